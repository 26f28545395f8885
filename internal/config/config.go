package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/atomicstack/update-all/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	// DefaultBasePath is the storage root of the target system.
	DefaultBasePath = "/media/fat"
	// IniRelativePath locates the settings file under the base path.
	IniRelativePath = "Scripts/update_all.ini"
)

const (
	envModel      = "UPDATE_ALL_MODEL"
	envEntry      = "UPDATE_ALL_ENTRY"
	envBasePath   = "UPDATE_ALL_BASE_PATH"
	envIni        = "UPDATE_ALL_INI"
	envDownloader = "UPDATE_ALL_DOWNLOADER"
	envWidth      = "UPDATE_ALL_WIDTH"
	envHeight     = "UPDATE_ALL_HEIGHT"
	envShowFooter = "UPDATE_ALL_FOOTER"
	envSkipMenu   = "UPDATE_ALL_SKIP_MENU"
	envTrace      = "UPDATE_ALL_TRACE"
	envLogFile    = "UPDATE_ALL_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("update-all", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	model := fs.String("model", envOrDefault(env, envModel, ""), "path to a YAML or JSON screen model (defaults to the bundled one)")
	entry := fs.String("entry", envOrDefault(env, envEntry, ""), "id of the first screen")
	basePath := fs.String("base-path", envOrDefault(env, envBasePath, DefaultBasePath), "storage root; relative file targets resolve against it")
	ini := fs.String("ini", envOrDefault(env, envIni, ""), "path to the settings INI file (defaults to <base-path>/"+IniRelativePath+")")
	downloader := fs.String("downloader", envOrDefault(env, envDownloader, ""), "command line run after the menu closes")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	skipMenu := fs.Bool("skip-menu", envOrBool(env, envSkipMenu, false), "run the downloader without showing the settings menu")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	base, err := expand(*basePath)
	if err != nil {
		return Config{}, err
	}
	iniPath, err := expand(*ini)
	if err != nil {
		return Config{}, err
	}
	if iniPath == "" {
		iniPath = filepath.Join(base, filepath.FromSlash(IniRelativePath))
	}
	modelPath, err := expand(*model)
	if err != nil {
		return Config{}, err
	}
	logPath, err := expand(*logFile)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ModelPath:  modelPath,
			Entry:      strings.TrimSpace(*entry),
			BasePath:   base,
			IniPath:    iniPath,
			Downloader: strings.TrimSpace(*downloader),
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			SkipMenu:   *skipMenu,
		},
		Logging: Logging{
			FilePath: logPath,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"model":      modelPath,
			"entry":      *entry,
			"basePath":   base,
			"ini":        iniPath,
			"downloader": *downloader,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"skipMenu":   strconv.FormatBool(*skipMenu),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    logPath,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// expand resolves a leading ~ to the user's home directory.
func expand(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return expanded, nil
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

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.SkipMenu && cfg.App.Downloader == "" {
		return fmt.Errorf("skip-menu needs a downloader command")
	}
	if cfg.App.ModelPath != "" {
		if _, err := os.Stat(cfg.App.ModelPath); err != nil {
			return fmt.Errorf("model: %w", err)
		}
	}
	return nil
}
