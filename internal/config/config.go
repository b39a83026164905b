package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger drivers accepted by LEDGER_DRIVER.
const (
	LedgerMySQL    = "mysql"
	LedgerPostgres = "postgres"
	LedgerBadger   = "badger"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Everything has a development default except the
// checkout secret, which is required when APP_ENV is "prod".
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	BookingAPIURL     string        // base URL of the booking service
	BookingAPITimeout time.Duration // per-request timeout towards the booking service
	FlatTax           int           // flat tax added to every order

	CheckoutSecret      string // secret used to sign checkout tokens
	CheckoutTokenTTLMin int    // checkout token time-to-live in minutes

	LedgerDriver string // mysql, postgres or badger
	DBUser       string // mysql username
	DBPass       string // mysql password (optional)
	DBHost       string // mysql host address
	DBPort       string // mysql port number
	DBName       string // mysql database name
	DatabaseURL  string // postgres connection string
	BadgerDir    string // badger directory; empty keeps the ledger in memory

	LogLevel string // echo logger level: debug, info, warn, error, off
}

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding ones already set.  A missing file is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("config: could not load %s: %v", f, err)
		}
	}
}

// Load reads configuration values from environment variables and returns a
// Config.
func Load() Config {
	env := envStr("APP_ENV", "dev")
	secret := os.Getenv("CHECKOUT_SECRET")
	if secret == "" {
		if env == "prod" {
			secret = must("CHECKOUT_SECRET")
		} else {
			secret = "dev-checkout-secret"
		}
	}

	return Config{
		Env:                 env,
		Port:                envStr("APP_PORT", "8080"),
		BookingAPIURL:       envStr("BOOKING_API_URL", "http://localhost:3000"),
		BookingAPITimeout:   envDur("BOOKING_API_TIMEOUT", 10*time.Second),
		FlatTax:             envInt("FLAT_TAX", 59),
		CheckoutSecret:      secret,
		CheckoutTokenTTLMin: envInt("CHECKOUT_TOKEN_TTL_MIN", 30),
		LedgerDriver:        strings.ToLower(envStr("LEDGER_DRIVER", LedgerBadger)),
		DBUser:              envStr("DB_USER", "root"),
		DBPass:              os.Getenv("DB_PASS"),
		DBHost:              envStr("DB_HOST", "127.0.0.1"),
		DBPort:              envStr("DB_PORT", "3306"),
		DBName:              envStr("DB_NAME", "bookit"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		BadgerDir:           os.Getenv("BADGER_DIR"),
		LogLevel:            strings.ToLower(envStr("LOG_LEVEL", "info")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
