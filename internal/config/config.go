package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Storage string

const (
	StoragePostgres Storage = "postgres"
	StorageSQLite   Storage = "sqlite"
	StorageMemory   Storage = "memory"
)

const defaultPort = "8123"
const defaultSQLitePath = "bosslevels.db"

type Config struct {
	cloudSQLUnixSocketPath string
	dBPassword             string
	dBUsername             string
	sentryDSN              string
	port                   string
	storage                Storage
	sqlitePath             string
	playerName             string
	otlpEnabled            bool
	googleCloudProject     string
	corsDomainSuffixes     []string
	env                    environment
}

func (c *Config) CloudSQLUnixSocketPath() string {
	return c.cloudSQLUnixSocketPath
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) Storage() Storage {
	return c.storage
}

func (c *Config) SQLitePath() string {
	return c.sqlitePath
}

// PlayerName is the name of the local player, used to attribute kill count messages
func (c *Config) PlayerName() string {
	return c.playerName
}

func (c *Config) OTLPEnabled() bool {
	return c.otlpEnabled
}

// GoogleCloudProject enables trace correlation in Cloud Logging when set
func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

// CORSDomainSuffixes are the web origins allowed to call the api
func (c *Config) CORSDomainSuffixes() []string {
	return c.corsDomainSuffixes
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, storage: %s, otlp: %t, ...}",
		string(c.env), c.port, string(c.storage), c.otlpEnabled,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("BOSSLEVELS_ENVIRONMENT")
	if !ok {
		return missingKey("BOSSLEVELS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: BOSSLEVELS_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	var storage Storage
	rawStorage := os.Getenv("BOSSLEVELS_STORAGE")
	switch rawStorage {
	case "":
		if env == development {
			storage = StorageSQLite
		} else {
			storage = StoragePostgres
		}
	case string(StoragePostgres), string(StorageSQLite), string(StorageMemory):
		storage = Storage(rawStorage)
	default:
		return Config{}, fmt.Errorf("%w: BOSSLEVELS_STORAGE (%s)", ErrInvalidValue, rawStorage)
	}

	otlpEnabled := false
	if rawOTLP := os.Getenv("BOSSLEVELS_OTLP_ENABLED"); rawOTLP != "" {
		parsed, err := strconv.ParseBool(rawOTLP)
		if err != nil {
			return Config{}, fmt.Errorf("%w: BOSSLEVELS_OTLP_ENABLED (%s)", ErrInvalidValue, rawOTLP)
		}
		otlpEnabled = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = defaultSQLitePath
	}

	cloudSQLUnixSocketPath := os.Getenv("CLOUDSQL_UNIX_SOCKET")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbUsername := os.Getenv("DB_USERNAME")
	sentryDSN := os.Getenv("SENTRY_DSN")
	playerName := os.Getenv("BOSSLEVELS_PLAYER_NAME")
	googleCloudProject := os.Getenv("GOOGLE_CLOUD_PROJECT")

	var corsDomainSuffixes []string
	for suffix := range strings.SplitSeq(os.Getenv("BOSSLEVELS_CORS_DOMAIN_SUFFIXES"), ",") {
		suffix = strings.TrimSpace(suffix)
		if suffix != "" {
			corsDomainSuffixes = append(corsDomainSuffixes, suffix)
		}
	}

	if env == production || env == staging {
		if storage == StoragePostgres {
			if cloudSQLUnixSocketPath == "" {
				return missingKey("CLOUDSQL_UNIX_SOCKET")
			}
			if dbUsername == "" {
				return missingKey("DB_USERNAME")
			}
			if dbPassword == "" {
				return missingKey("DB_PASSWORD")
			}
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
		if playerName == "" {
			return missingKey("BOSSLEVELS_PLAYER_NAME")
		}
	}

	return Config{
		cloudSQLUnixSocketPath: cloudSQLUnixSocketPath,
		dBPassword:             dbPassword,
		dBUsername:             dbUsername,
		sentryDSN:              sentryDSN,
		port:                   port,
		storage:                storage,
		sqlitePath:             sqlitePath,
		playerName:             playerName,
		otlpEnabled:            otlpEnabled,
		googleCloudProject:     googleCloudProject,
		corsDomainSuffixes:     corsDomainSuffixes,
		env:                    env,
	}, nil
}
