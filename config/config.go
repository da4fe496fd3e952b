package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Iterations   int
	Seed         uint64
	Scenario     string // full or endgame
	Sampling     string // vanilla, external or outcome
	StrategyPath string // .db/.sqlite for SQLite, anything else for a gob snapshot
	MetricsDir   string
	LogLevel     string
	LogPretty    bool
	Games        int
}

// Load reads .env when present, then GOSTOP_* environment variables over the defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Iterations:   atoiDef(os.Getenv("GOSTOP_ITERATIONS"), 1000),
		Seed:         atouDef(os.Getenv("GOSTOP_SEED"), 1),
		Scenario:     getenv("GOSTOP_SCENARIO", "endgame"),
		Sampling:     getenv("GOSTOP_SAMPLING", "vanilla"),
		StrategyPath: getenv("GOSTOP_STRATEGY_PATH", "strategy.db"),
		MetricsDir:   getenv("GOSTOP_METRICS_DIR", "experiments"),
		LogLevel:     getenv("GOSTOP_LOG_LEVEL", "info"),
		LogPretty:    asBool(os.Getenv("GOSTOP_LOG_PRETTY")),
		Games:        atoiDef(os.Getenv("GOSTOP_GAMES"), 100),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func atouDef(s string, def uint64) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return n
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
