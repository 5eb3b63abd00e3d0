package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Store driver names accepted in STORE_DRIVER.
const (
	StoreFile  = "file"
	StoreMySQL = "mysql"
	StoreRedis = "redis"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret is the only hard requirement:
// without it no token can ever be issued or verified, so its absence is a
// boot-time fatal rather than a per-request error.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	JWTSecret   string // secret used to sign JWTs
	TokenTTLMin int    // token time-to-live in minutes; 0 disables expiry
	BcryptCost  int    // bcrypt cost for password hashing

	StoreDriver string // user store backend: file | mysql | redis
	UsersFile   string // path of the JSON user file (file driver)

	DBUser string // database username (mysql driver)
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	AMQPURL string // RabbitMQ URL; empty disables auth event publishing
}

// Load reads configuration values from environment variables and returns a
// Config. JWT_SECRET is enforced by must() and a missing value causes the
// program to exit with a fatal log message. Database variables are only
// required when the mysql store driver is selected.
func Load() Config {
	cfg := Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("APP_PORT", "4001"),
		JWTSecret:   must("JWT_SECRET"),
		TokenTTLMin: getenvInt("TOKEN_TTL_MIN", 0),
		BcryptCost:  getenvInt("BCRYPT_COST", 10),
		StoreDriver: getenv("STORE_DRIVER", StoreFile),
		UsersFile:   getenv("USERS_FILE", "usersData.json"),
		AMQPURL:     os.Getenv("RABBITMQ_URL"),
	}
	if cfg.AMQPURL == "" {
		cfg.AMQPURL = os.Getenv("AMQP_URL")
	}

	switch cfg.StoreDriver {
	case StoreFile, StoreRedis:
	case StoreMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	default:
		log.Fatalf("unknown STORE_DRIVER: %q (want file, mysql or redis)", cfg.StoreDriver)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable, or a default when it
// is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the value to an integer. Invalid
// values fall back to the default.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
