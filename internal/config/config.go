// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON or YAML
// config file and environment variables, applied in that order.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address" yaml:"server_address"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn" yaml:"database_dsn"`

	// Store selects the document store backend: "postgres" or "mongo".
	Store string `json:"store" yaml:"store"`

	// MongoURI is the MongoDB connection string used when Store is "mongo".
	MongoURI string `json:"mongodb_uri" yaml:"mongodb_uri"`

	// MongoDatabase is the MongoDB database name.
	MongoDatabase string `json:"mongodb_database" yaml:"mongodb_database"`

	// JWTSecret signs and verifies credentials. It is required.
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret"`

	// LogLevel is the zap log level.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// ClientOrigins are the browser origins allowed by CORS, comma separated.
	ClientOrigins string `json:"client_origin" yaml:"client_origin"`

	// Config is the path to the Config file.
	Config string `json:"-" yaml:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Store, "s", StorePostgres, "document store: postgres or mongo")
	flag.StringVar(&options.MongoURI, "m", "", "mongodb connection uri")
	flag.StringVar(&options.MongoDatabase, "mdb", "habit_tracker", "mongodb database name")
	flag.StringVar(&options.JWTSecret, "j", "", "secret used to sign tokens")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.ClientOrigins, "o", "http://localhost:3000", "allowed CORS origins, comma separated")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := loadFile(options.Config, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	applyEnv(options)
	return options
}

// loadFile reads path into dst. Files ending in .yaml or .yml are parsed
// as YAML, anything else as JSON. Keys missing from the file keep their
// current values.
func loadFile(path string, dst *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	default:
		err = json.Unmarshal(data, dst)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides dst with any of the recognised environment variables.
func applyEnv(dst *Options) {
	env := map[string]*string{
		"SERVER_ADDRESS":   &dst.Port,
		"DATABASE_DSN":     &dst.DatabaseDSN,
		"STORE":            &dst.Store,
		"MONGODB_URI":      &dst.MongoURI,
		"MONGODB_DATABASE": &dst.MongoDatabase,
		"JWT_SECRET":       &dst.JWTSecret,
		"LOG_LEVEL":        &dst.LogLevel,
		"CLIENT_ORIGIN":    &dst.ClientOrigins,
	}
	for name, field := range env {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// Validate reports the first configuration problem that prevents startup.
func (o *Options) Validate() error {
	if o.JWTSecret == "" {
		return errors.New("jwt secret is required (JWT_SECRET or -j)")
	}
	switch o.Store {
	case StorePostgres:
		if o.DatabaseDSN == "" {
			return errors.New("database dsn is required for the postgres store (DATABASE_DSN or -d)")
		}
	case StoreMongo:
		if o.MongoURI == "" || o.MongoDatabase == "" {
			return errors.New("mongodb uri and database are required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store %q", o.Store)
	}
	return nil
}

// Origins returns the configured CORS origins.
func (o *Options) Origins() []string {
	var out []string
	for _, origin := range strings.Split(o.ClientOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
