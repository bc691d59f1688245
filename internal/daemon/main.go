// Package daemon assembles the application: database, identity gateway,
// profile store, session storage and the web service.
package daemon

import (
	"fmt"

	memorystorage "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/irislab/irismapper-admin/internal/config"
	profilecontroller "github.com/irislab/irismapper-admin/internal/db/controller/profile"
	"github.com/irislab/irismapper-admin/internal/db/dsn"
	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/web"
	"github.com/irislab/irismapper-admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, sessionStorage := openBackend(cfg)

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	gateway := identity.NewLocalGateway(db)
	profiles := profilecontroller.New(db)

	seed(cfg, gateway, profiles)

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, gateway, profiles),
	}
}

// openBackend opens the gorm database and the matching session storage for
// the configured engine. The sqlite engine pairs with in-process session
// storage, the server engines keep sessions next to the data.
func openBackend(cfg *config.Config) (*gorm.DB, storage.Storage) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DB.Engine {
	case "mysql":
		db, err = gorm.Open(gormmysql.Open(dsn.MySQL(cfg)), &gorm.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect mysql database")
		}

		return db, sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         "sessions",
		})

	case "postgres":
		db, err = gorm.Open(gormpostgres.Open(dsn.Postgres(cfg)), &gorm.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect postgres database")
		}

		return db, sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         "sessions",
		})

	default:
		db, err = gorm.Open(sqlite.Open(dsn.SQLite(cfg)), &gorm.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite database")
		}

		return db, memorystorage.New()
	}
}
