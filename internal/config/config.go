package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"techgear/database"
)

// Valeurs par défaut
const (
	DefaultPort           = 3000
	DefaultDriver         = database.DriverSQLite
	DefaultSQLitePath     = "./TechGearWebShop.db"
	DefaultBusyTimeout    = 5 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config configuration complète du serveur
type Config struct {
	Port     int
	Database DatabaseConfig
	HTTP     HTTPConfig
	Log      LogConfig

	loader *Loader
}

// DatabaseConfig paramètres de connexion et de pool
type DatabaseConfig struct {
	Driver          string
	Path            string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
	BusyTimeout     time.Duration
}

// HTTPConfig paramètres du serveur HTTP
type HTTPConfig struct {
	RequestTimeout time.Duration
}

// LogConfig niveau et fichier de log (rotation lue via Loader)
type LogConfig struct {
	Level string
	File  string
}

// Load charge le fichier .env (absent toléré) puis lit l'environnement
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromSource(EnvSource{}), nil
}

// FromSource construit la configuration à partir d'une source de settings
func FromSource(src SettingsGetter) *Config {
	l := NewLoader(src)

	return &Config{
		Port: l.Int("PORT", DefaultPort),
		Database: DatabaseConfig{
			Driver:          l.String("DB_DRIVER", DefaultDriver),
			Path:            l.String("DB_PATH", DefaultSQLitePath),
			DSN:             l.String("DB_DSN", ""),
			Host:            l.String("DB_HOST", "localhost"),
			Port:            l.String("DB_PORT", "5432"),
			User:            l.String("DB_USER", "techgear"),
			Password:        l.String("DB_PASSWORD", "techgear"),
			Name:            l.String("DB_NAME", "techgear"),
			SSLMode:         l.String("DB_SSLMODE", "disable"),
			MaxOpenConns:    l.Int("DB_MAX_OPEN_CONNS", database.DefaultMaxOpenConns),
			MaxIdleConns:    l.Int("DB_MAX_IDLE_CONNS", database.DefaultMaxIdleConns),
			ConnMaxLifetime: l.Duration("DB_CONN_MAX_LIFETIME", database.DefaultConnMaxLifetime),
			QueryTimeout:    l.Duration("DB_QUERY_TIMEOUT", database.DefaultQueryTimeout),
			BusyTimeout:     l.Duration("DB_BUSY_TIMEOUT", DefaultBusyTimeout),
		},
		HTTP: HTTPConfig{
			RequestTimeout: l.Duration("HTTP_REQUEST_TIMEOUT", DefaultRequestTimeout),
		},
		Log: LogConfig{
			Level: l.String("LOG_LEVEL", DefaultLogLevel),
			File:  l.String("LOG_FILE", ""),
		},
		loader: l,
	}
}

// Loader retourne le loader utilisé, pour les réglages secondaires (rotation des logs)
func (c *Config) Loader() *Loader {
	return c.loader
}

// DatabaseOptions construit les options d'ouverture pour le driver configuré
func (c *Config) DatabaseOptions() (database.Options, error) {
	db := c.Database

	dialect, err := database.DialectFor(db.Driver)
	if err != nil {
		return database.Options{}, err
	}

	dsn := db.DSN
	if dsn == "" {
		if dialect.IsSQLite() {
			dsn = database.SQLiteDSN(db.Path, db.BusyTimeout)
		} else {
			dsn = database.PostgresDSN(db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
		}
	}

	return database.Options{
		Driver:          dialect.DriverName(),
		DSN:             dsn,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime,
		QueryTimeout:    db.QueryTimeout,
	}, nil
}
