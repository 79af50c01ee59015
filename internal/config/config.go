// Package config loads and validates application configuration.
//
// Values are layered, lowest precedence first: built-in defaults, an optional
// YAML file named by CONFIG_FILE, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Location is the zone in which trip days are counted. Set by
	// TRIP_TIMEZONE as an IANA name; defaults to UTC.
	Location *time.Location

	// MigrateOnStart applies pending migrations before the server starts.
	MigrateOnStart bool

	// MaxBodyBytes caps the size of a request body. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// source is the flat key space shared by the YAML file and the environment.
// Keys are the lower-cased environment variable names.
type source struct {
	Port           string `koanf:"port"             validate:"required,numeric"`
	DatabaseURL    string `koanf:"database_url"     validate:"required"`
	LogLevel       string `koanf:"log_level"        validate:"oneof=debug info warn error"`
	CORSOrigins    string `koanf:"cors_origins"`
	TripTimezone   string `koanf:"trip_timezone"    validate:"required,timezone"`
	MigrateOnStart bool   `koanf:"migrate_on_start"`
	MaxBodyBytes   int64  `koanf:"max_body_bytes"   validate:"gt=0"`
}

func defaults() source {
	return source{
		Port:         "8080",
		LogLevel:     "info",
		CORSOrigins:  "http://localhost:5173",
		TripTimezone: "UTC",
		MaxBodyBytes: 1 << 20,
	}
}

// Load reads configuration and returns a validated Config.
// Returns an error naming any variables that are missing or invalid.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they fall through to the file or default.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		if value == "" || !knownKeys[key] {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	src := defaults()
	if err := k.UnmarshalWithConf("", &src, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(src); err != nil {
		return Config{}, err
	}

	loc, err := time.LoadLocation(src.TripTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("TRIP_TIMEZONE: %w", err)
	}

	return Config{
		Port:           src.Port,
		DatabaseURL:    src.DatabaseURL,
		LogLevel:       src.LogLevel,
		CORSOrigins:    splitCSV(src.CORSOrigins),
		Location:       loc,
		MigrateOnStart: src.MigrateOnStart,
		MaxBodyBytes:   src.MaxBodyBytes,
	}, nil
}

// knownKeys limits the environment provider to the variables Config reads.
var knownKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(source{})
	for i := 0; i < t.NumField(); i++ {
		keys[t.Field(i).Tag.Get("koanf")] = true
	}
	return keys
}()

var validate = func() func(source) error {
	v := validator.New()
	// Report fields by their environment variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToUpper(f.Tag.Get("koanf"))
	})

	return func(src source) error {
		err := v.Struct(src)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fmt.Sprintf("%s (%v)", fe.Field(), fe.Value()))
		}

		var errs []error
		if len(missing) > 0 {
			errs = append(errs, fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", ")))
		}
		if len(invalid) > 0 {
			errs = append(errs, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", ")))
		}
		return errors.Join(errs...)
	}
}()

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
