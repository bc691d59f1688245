package config

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	File     string // database file (sqlite only)
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
