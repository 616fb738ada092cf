package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are process-level options read from the environment.
type Settings struct {
	RulesPath   string
	Sheet       string
	Addr        string
	Concurrency int
	LogLevel    string
	LogFormat   string
}

// LoadSettings loads .env files that exist (without overriding set variables) and reads settings.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return Settings{}, fmt.Errorf("load %s: %w", name, err)
		}
	}

	concurrency, err := getEnvIntOrDefault("SHELFGRID_CONCURRENCY", 4)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		RulesPath:   os.Getenv("SHELFGRID_RULES"),
		Sheet:       os.Getenv("SHELFGRID_SHEET"),
		Addr:        getEnvOrDefault("SHELFGRID_ADDR", ":8080"),
		Concurrency: concurrency,
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "text"),
	}, nil
}

// Vocabulary compiles the rules file named by the settings, or the defaults.
// A non-empty Sheet overrides the rules' preferred sheet.
func (s Settings) Vocabulary() (*Vocabulary, error) {
	rules := DefaultRules()
	if s.RulesPath != "" {
		var err error
		if rules, err = LoadRules(s.RulesPath); err != nil {
			return nil, err
		}
	}
	if s.Sheet != "" {
		rules.PreferredSheet = s.Sheet
	}
	return rules.Compile()
}

// NewLogger builds a slog logger writing to w.
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "", "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
