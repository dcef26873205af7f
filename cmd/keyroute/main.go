// Package main is the entry point for the keyroute terminal client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keyroute/internal/app"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/platform/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	logLevel    string
	strategy    string
	bindings    string
	debugEvents bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "Error: keyroute must be run in a terminal\n")
		return 1
	}

	logOut, closeLog, err := openLog(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := app.NewLogger(app.LoggerConfig{
		Level:   app.ParseLogLevel(cfg.Log.Level),
		Output:  logOut,
		Prefix:  "keyroute",
		Console: cfg.Log.Format == "console",
	})
	app.SetLogger(logger)

	screen, err := terminal.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	client, err := app.New(app.Options{
		Config:  cfg,
		Screen:  screen,
		Logger:  logger,
		Version: version,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan terminal.Event, 64)
	go screen.Run(ctx, events)

	runErr := client.Run(ctx, events)
	stop()
	screen.Fini()

	if err := client.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.strategy != "" {
		cfg.Input.Strategy = opts.strategy
	}
	if opts.bindings != "" {
		cfg.Bindings.File = opts.bindings
	}
	if opts.debugEvents {
		cfg.Input.DebugEvents = true
	}
	return cfg, cfg.Validate()
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "keyroute.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "keyroute.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.strategy, "strategy", "", "Text input strategy (remap, chars)")
	flag.StringVar(&opts.strategy, "s", "", "Text input strategy (shorthand)")
	flag.StringVar(&opts.bindings, "bindings", "", "Path to the key bindings file")
	flag.StringVar(&opts.bindings, "b", "", "Path to the key bindings file (shorthand)")
	flag.BoolVar(&opts.debugEvents, "debug-events", false, "Trace every key event at debug level")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyroute - key binding and input routing client\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyroute [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  KEYROUTE_LOG_LEVEL, KEYROUTE_LOG_FILE, KEYROUTE_INPUT_STRATEGY,\n")
		fmt.Fprintf(os.Stderr, "  KEYROUTE_BINDINGS_FILE, KEYROUTE_BINDINGS_WATCH\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyroute                      Run with keyroute.toml if present\n")
		fmt.Fprintf(os.Stderr, "  keyroute -s chars             Let the terminal decode characters\n")
		fmt.Fprintf(os.Stderr, "  keyroute -b my.cfg            Use another bindings file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keyroute %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}
