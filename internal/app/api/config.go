package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.temporal.io/sdk/client"
)

// Config carries environment- and flag-driven settings for the API process.
type Config struct {
	Port              string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SeedCatalog       bool
	ShutdownTimeout   time.Duration
}

// LoadConfig reads environment variables, applies defaults, then lets command
// line flags override them. args excludes the program name.
func LoadConfig(args []string) (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedCatalog:       true,
		ShutdownTimeout:   10 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_SEED")); raw != "" {
		cfg.SeedCatalog = isTruthy(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	flags := pflag.NewFlagSet("inventory-api", pflag.ContinueOnError)
	flags.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flags.BoolVar(&cfg.SeedCatalog, "seed", cfg.SeedCatalog, "start with the demo catalog")
	flags.BoolVar(&cfg.TemporalDisabled, "temporal-disabled", cfg.TemporalDisabled, "place orders inline instead of through Temporal")
	flags.StringVar(&cfg.TemporalAddress, "temporal-address", cfg.TemporalAddress, "Temporal frontend host:port")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("invalid port %q", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
