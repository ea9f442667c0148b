package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "articles"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Addr          string
	DiagAddr      string
	Store         string
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration
	JWTSecret     string
	Debug         bool
	Routes        bool
}

func envKey(name string) string {
	return strings.ToUpper(ServiceName + "_" + name)
}

func getEnv(name, fallback string) string {
	if v, ok := os.LookupEnv(envKey(name)); ok {
		return v
	}

	return fallback
}

func getEnvBool(name string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(name, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}

	return b
}

func getEnvDuration(name string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(name, fallback.String()))
	if err != nil {
		return fallback
	}

	return d
}

// LoadDotEnv loads variables from the dotenv file at path. A missing file
// is not an error. Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

// Load parses args. Every flag defaults to its ARTICLES_* environment
// variable.
func Load(args []string) (Config, error) {
	var c Config

	fset := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	fset.BoolVar(&c.Routes, "routes", getEnvBool("routes", false), "Generate router documentation")
	fset.StringVar(&c.Addr, "addr", getEnv("addr", ":3333"), "application port")
	fset.StringVar(&c.DiagAddr, "diag_addr", getEnv("diag_addr", ":9999"), "diag port")
	fset.StringVar(&c.Store, "store", getEnv("store", StoreMongo), "article store: mongo or memory")
	fset.StringVar(&c.MongoURI, "mongo_uri", getEnv("mongo_uri", "mongodb://localhost:27017"), "MongoDB connection string")
	fset.StringVar(&c.MongoDatabase, "mongo_db", getEnv("mongo_db", ServiceName), "MongoDB database name")
	fset.DurationVar(&c.StoreTimeout, "store_timeout", getEnvDuration("store_timeout", 5*time.Second), "timeout of a single store call, 0 disables")
	fset.StringVar(&c.JWTSecret, "jwt_secret", getEnv("jwt_secret", ""), "HS256 secret of bearer tokens")
	fset.BoolVar(&c.Debug, "debug", getEnvBool("debug", false), "development logging")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	return c, c.validate()
}

func (c Config) validate() error {
	if c.Routes {
		return nil
	}

	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("mongo_uri is required with the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.StoreTimeout < 0 {
		return errors.New("store_timeout must not be negative")
	}

	return nil
}
