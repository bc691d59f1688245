// Package web is the HTTP surface of the application: it builds the fiber
// app, serves the embedded templates and static files, applies the access
// guard to every visit and wires the page handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
	"github.com/irislab/irismapper-admin/internal/web/handler"
	"github.com/irislab/irismapper-admin/internal/web/handler/admin"
	"github.com/irislab/irismapper-admin/internal/web/handler/index"
	"github.com/irislab/irismapper-admin/internal/web/handler/login"
	"github.com/irislab/irismapper-admin/internal/web/handler/logout"
	profilepage "github.com/irislab/irismapper-admin/internal/web/handler/profile"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	db           *gorm.DB
	profiles     profile.Store
	gateway      identity.Gateway
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail the health check first so
	// the LB stops routing to this pod before the listener goes away.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, gateway identity.Gateway, profiles profile.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if gateway == nil || profiles == nil {
		panic("gateway and profile store cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "IrisMapper Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     false,
			},
		),
	)

	service := &Service{
		cfg:      cfg,
		App:      app,
		db:       db,
		gateway:  gateway,
		profiles: profiles,
	}
	service.alive.Store(true)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", service.healthz)

	// access guard on everything below
	app.Use(service.GuardMiddleware)

	deps := &handler.Deps{
		Gateway:  gateway,
		Profiles: profiles,
		Folders:  cfg.Mount.FoldersOrDefault(),
	}

	// init handlers (they register their own routes for every mount prefix)
	if err := login.Handler.Init(app, cfg, deps); err != nil {
		log.Fatal().Err(err).Msg("login handler init failed")
	}

	if err := logout.Handler.Init(app, cfg, deps); err != nil {
		log.Fatal().Err(err).Msg("logout handler init failed")
	}

	if err := index.Handler.Init(app, cfg, deps); err != nil {
		log.Fatal().Err(err).Msg("index handler init failed")
	}

	if err := profilepage.Handler.Init(app, cfg, deps); err != nil {
		log.Fatal().Err(err).Msg("profile handler init failed")
	}

	if err := admin.Handler.Init(app, cfg, deps); err != nil {
		log.Fatal().Err(err).Msg("admin handler init failed")
	}

	return service
}

// healthz reports liveness; it flips to 503 during graceful shutdown.
func (s *Service) healthz(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("ok")
}
