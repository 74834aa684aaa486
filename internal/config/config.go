// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"address" env:"SERVER_ADDRESS"`

	// Storage selects the key-value backend: memory, file, postgres, sqlite or none.
	Storage string `json:"storage" env:"STORAGE"`

	// StorageFile is the JSON document used by the file backend
	// and the database file used by the sqlite backend.
	StorageFile string `json:"storage_file" env:"STORAGE_FILE"`

	// DatabaseDSN holds the database connection string for the postgres backend.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// LogLevel is the minimum zap level that is written.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	// PaymentDelay paces the simulated checkout.
	PaymentDelay time.Duration `json:"-" env:"PAYMENT_DELAY"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

// Load builds Options from args, the JSON config file and the environment,
// each layer overriding the previous one. A missing config file is skipped.
func Load(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("patoapp", flag.ContinueOnError)
	fs.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.Storage, "s", "memory", "storage backend: memory, file, postgres, sqlite, none")
	fs.StringVar(&options.StorageFile, "f", "patoapp.json", "storage file for the file and sqlite backends")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	fs.DurationVar(&options.PaymentDelay, "p", 2*time.Second, "simulated payment delay")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// CONFIG picks the file before it is read.
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return options, nil
}

// Parse loads Options from the process arguments and environment.
// It exits the process when the configuration cannot be read.
func Parse() *Options {
	options, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("error while loading config: %v", err)
	}
	return options
}

// TLSEnabled reports whether both a certificate and a key are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// StorageLocation returns the DSN for the postgres backend and the storage
// file path otherwise.
func (o *Options) StorageLocation() string {
	if o.Storage == "postgres" {
		return o.DatabaseDSN
	}
	return o.StorageFile
}
