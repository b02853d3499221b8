package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the application.
type Config struct {
	Bot     Bot
	API     API
	Console Console
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Bot struct {
	Token string
}

type API struct {
	BaseURL string
	Timeout time.Duration
}

// Console configures the local terminal front-end used instead of the bot.
type Console struct {
	Enabled bool
	Token   string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBotToken     = "LISTBOT_TOKEN"
	envAPIBaseURL   = "LISTBOT_API_URL"
	envTimeout      = "LISTBOT_API_TIMEOUT"
	envConsole      = "LISTBOT_CONSOLE"
	envConsoleToken = "LISTBOT_CONSOLE_TOKEN"
	envTrace        = "LISTBOT_TRACE"
	envLogFile      = "LISTBOT_LOG_FILE"
)

const (
	defaultAPIBaseURL   = "http://127.0.0.1:9000/api/v2"
	defaultTimeout      = 10 * time.Second
	defaultConsoleToken = "console"
)

// Load parses configuration from a .env file (when present), CLI arguments
// and environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("listbot", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	botToken := fs.String("token", envOrDefault(env, envBotToken, ""), "bot API token")
	apiURL := fs.String("api-url", envOrDefault(env, envAPIBaseURL, defaultAPIBaseURL), "base URL of the list service")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "per-request timeout for the list service")
	console := fs.Bool("console", envOrBool(env, envConsole, false), "run the local terminal front-end instead of the bot")
	consoleToken := fs.String("console-token", envOrDefault(env, envConsoleToken, defaultConsoleToken), "user token presented to the list service in console mode")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be >= 0 (got %s)", *timeout)
	}
	if strings.TrimSpace(*apiURL) == "" {
		return Config{}, fmt.Errorf("api-url must not be empty")
	}

	cfg := Config{
		Bot: Bot{
			Token: *botToken,
		},
		API: API{
			BaseURL: strings.TrimRight(*apiURL, "/"),
			Timeout: *timeout,
		},
		Console: Console{
			Enabled: *console,
			Token:   *consoleToken,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"api-url":       *apiURL,
			"timeout":       timeout.String(),
			"console":       strconv.FormatBool(*console),
			"console-token": *consoleToken,
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if !cfg.Console.Enabled && cfg.Bot.Token == "" {
		return fmt.Errorf("bot token is required (flag -token or %s)", envBotToken)
	}
	if cfg.Console.Enabled && strings.TrimSpace(cfg.Console.Token) == "" {
		return fmt.Errorf("console-token must not be empty in console mode")
	}
	return nil
}
