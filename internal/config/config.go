package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Version is the current version of the harness.
	Version = "1"
	// AppName is the application name.
	AppName = "booker-e2e"
)

// Config holds all configuration for a harness run.
type Config struct {
	// Target
	BaseURL    string // UI base URL
	APIBaseURL string // booking API base URL, defaults to BaseURL

	// Browser
	ControlURL   string // attach to a running browser's CDP endpoint
	BrowserBin   string // explicit browser binary path
	Headless     bool
	AutoDownload bool // download Chromium when no binary is found

	// Execution
	ActionTimeout time.Duration // wait budget per UI interaction

	// Credentials (env only, never flags)
	Username string
	Password string

	// Stub platform
	WithStub bool
	StubAddr string

	// Flags
	ShowVersion bool
	ShowHelp    bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "",
		APIBaseURL:    "",
		ControlURL:    "",
		BrowserBin:    "",
		Headless:      true,
		AutoDownload:  true,
		ActionTimeout: 20 * time.Second,
		WithStub:      false,
		StubAddr:      "127.0.0.1:3001",
		ShowVersion:   false,
		ShowHelp:      false,
	}
}

// ParseFlags parses command line flags and the environment into a config.
// Credentials come from BOOKER_USER and BOOKER_PASSWORD, optionally loaded
// from a .env file.
func ParseFlags() *Config {
	cfg := DefaultConfig()

	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "UI base URL of the platform under test")
	flag.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Booking API base URL (defaults to base-url)")

	flag.StringVar(&cfg.ControlURL, "control-url", cfg.ControlURL, "CDP endpoint of an already-running browser")
	flag.StringVar(&cfg.BrowserBin, "browser-bin", cfg.BrowserBin, "Path to a browser binary")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run the browser headless")
	flag.BoolVar(&cfg.AutoDownload, "auto-download", cfg.AutoDownload, "Download Chromium when none is installed")

	flag.DurationVar(&cfg.ActionTimeout, "action-timeout", cfg.ActionTimeout, "Wait budget per UI interaction")

	flag.BoolVar(&cfg.WithStub, "with-stub", cfg.WithStub, "Run the in-process stub platform and target it")
	flag.StringVar(&cfg.StubAddr, "stub-addr", cfg.StubAddr, "Listen address for the stub platform")

	flag.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", cfg.ShowHelp, "Show help message")

	flag.Usage = func() {
		PrintHelp()
	}

	flag.Parse()

	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()
	cfg.Username = os.Getenv("BOOKER_USER")
	cfg.Password = os.Getenv("BOOKER_PASSWORD")

	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills derived fields.
func ApplyDefaults(cfg *Config) {
	if cfg.WithStub && cfg.BaseURL == "" {
		cfg.BaseURL = "http://" + cfg.StubAddr
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = cfg.BaseURL
	}
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = 20 * time.Second
	}
}

// Validate rejects configurations the run cannot start with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base-url is required (or use --with-stub)")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("BOOKER_USER and BOOKER_PASSWORD must be set")
	}
	return nil
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("%s v%s\n", AppName, Version)
}

// PrintHelp prints help information.
func PrintHelp() {
	fmt.Printf(`%s v%s (hotel booking UI/API test harness)

Usage:
  ./e2e [flags]

Target:
  --base-url        UI base URL of the platform under test
  --api-base-url    booking API base URL (defaults to base-url)

Browser:
  --control-url     attach to a running browser's CDP endpoint
  --browser-bin     path to a browser binary
  --headless        run the browser headless (default true)
  --auto-download   download Chromium when none is installed (default true)

Execution:
  --action-timeout  wait budget per UI interaction (default 20s)

Stub platform:
  --with-stub       run the in-process stub platform and target it
  --stub-addr       listen address for the stub platform (default 127.0.0.1:3001)

Credentials (environment or .env):
  BOOKER_USER       admin username
  BOOKER_PASSWORD   admin password

Other:
  --version         show version
  --help            show this help

`, AppName, Version)
}

// HandleFlags handles version and help flags, exiting when either is set.
func HandleFlags(cfg *Config) {
	if cfg.ShowVersion {
		PrintVersion()
		os.Exit(0)
	}
	if cfg.ShowHelp {
		PrintHelp()
		os.Exit(0)
	}
}
