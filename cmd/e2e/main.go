package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"booker-e2e/internal/apiclient"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/config"
	"booker-e2e/internal/fixture"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/scenario"
	"booker-e2e/internal/stubserver"
	"booker-e2e/internal/verify"
)

func main() {
	cfg := config.ParseFlags()
	config.HandleFlags(cfg)

	log := logging.New("e2e", slog.LevelInfo)
	log.Info("starting", "app", config.AppName, "version", config.Version)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "cause", err.Error())
		config.PrintHelp()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.WithStub {
		stub := stubserver.New(stubserver.Credentials{
			Username: cfg.Username,
			Password: cfg.Password,
		})
		go func() {
			if err := stub.Listen(cfg.StubAddr); err != nil {
				log.Error("stub platform stopped", "cause", err.Error())
			}
		}()
		defer func() { _ = stub.Shutdown() }()
		log.Info("stub platform listening", "addr", cfg.StubAddr)
	}

	mgr := browser.NewManager(browser.Options{
		ControlURL:   cfg.ControlURL,
		BinPath:      cfg.BrowserBin,
		Headless:     cfg.Headless,
		AutoDownload: cfg.AutoDownload,
	}, log)
	if err := mgr.Start(ctx); err != nil {
		log.Error("failed to start browser", "cause", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := mgr.Stop(); err != nil {
			log.Error("failed to stop browser", "cause", err.Error())
		}
	}()

	rooms, err := fixture.Rooms()
	if err != nil {
		log.Error("failed to load fixtures", "cause", err.Error())
		os.Exit(1)
	}

	factory := func(ctx context.Context, name string) (*scenario.Session, func(), error) {
		sess, err := mgr.NewSession(ctx, cfg.BaseURL, cfg.ActionTimeout)
		if err != nil {
			return nil, nil, err
		}
		scenarioLog := log.WithScenario(name).WithSession(sess.ID())
		return &scenario.Session{
			ID:      sess.ID(),
			Browser: sess,
			API:     apiclient.NewClient(cfg.APIBaseURL, nil, scenarioLog),
			Log:     scenarioLog,
			Soft:    verify.NewCollector(scenarioLog),
		}, sess.Close, nil
	}

	runner := scenario.NewRunner(factory, log)
	groups := scenario.BuiltinGroups(scenario.SuiteConfig{
		Username: cfg.Username,
		Password: cfg.Password,
		Rooms:    rooms,
	})

	results, runErr := runner.Run(ctx, groups)

	passed, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Error("FAIL", "group", res.Group, "scenario", res.Scenario, "duration", res.Duration.String(), "cause", res.Err.Error())
			continue
		}
		passed++
		log.Info("PASS", "group", res.Group, "scenario", res.Scenario, "duration", res.Duration.String())
	}
	log.Info("run finished", "passed", passed, "failed", failed)

	if runErr != nil {
		os.Exit(1)
	}
}
