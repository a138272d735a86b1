// Package browser owns the Chromium lifecycle and hands out isolated
// per-scenario sessions. The engine is consumed through rod; nothing above
// this package touches CDP directly.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"

	"booker-e2e/internal/logging"
)

// Options configures how the manager obtains a browser. When ControlURL is
// set the manager attaches to an already-running instance and never kills it;
// otherwise it launches its own.
type Options struct {
	ControlURL   string
	BinPath      string
	Headless     bool
	AutoDownload bool
}

// Manager owns one browser process (or attachment) for the whole run. Each
// scenario gets its own incognito context via NewSession, so no cookie or
// storage state leaks between scenarios.
type Manager struct {
	opts Options
	log  *logging.Logger

	mu        sync.Mutex
	restartMu sync.Mutex
	launcher  *launcher.Launcher
	browser   *rod.Browser
	wsURL     string
	attached  bool
	running   bool
}

// NewManager creates a browser manager.
func NewManager(opts Options, log *logging.Logger) *Manager {
	return &Manager{opts: opts, log: log}
}

// Start launches or attaches to the browser and connects over CDP.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	wsURL := m.opts.ControlURL
	if wsURL == "" {
		binPath := m.opts.BinPath
		if binPath == "" && m.opts.AutoDownload {
			path, err := EnsureBrowser(ctx)
			if err != nil {
				return fmt.Errorf("failed to obtain a browser binary: %w", err)
			}
			binPath = path
		}

		l := launcher.New().Headless(m.opts.Headless)
		if binPath != "" {
			l.Bin(binPath)
		}

		launched, err := l.Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		m.launcher = l
		wsURL = launched
	} else {
		m.attached = true
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		if m.launcher != nil {
			m.launcher.Kill()
			m.launcher = nil
		}
		return fmt.Errorf("failed to connect to browser at %s: %w", wsURL, err)
	}

	m.browser = browser
	m.wsURL = wsURL
	m.running = true

	m.log.Info("browser started", "endpoint", wsURL, "attached", m.attached)
	return nil
}

// Stop closes the connection and, for a launched browser, kills the process.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.log.Warn("failed to close browser", "cause", err.Error())
		}
	}

	if m.launcher != nil && !m.attached {
		m.launcher.Kill()
		m.launcher.Cleanup()
	}

	m.launcher = nil
	m.browser = nil
	m.wsURL = ""
	m.running = false

	m.log.Info("browser stopped")
	return nil
}

// IsRunning reports whether the manager holds a live connection.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Endpoint returns the DevTools endpoint in use.
func (m *Manager) Endpoint() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wsURL
}

// NewSession opens an isolated incognito context with a fresh page rooted at
// baseURL. The session is owned exclusively by one scenario and must be
// closed when the scenario ends.
func (m *Manager) NewSession(ctx context.Context, baseURL string, timeout time.Duration) (*Session, error) {
	if err := m.ensureStarted(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	browser := m.browser
	m.mu.Unlock()

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		if restartErr := m.restart(ctx); restartErr != nil {
			return nil, fmt.Errorf("failed to restart browser after connection error: %w", restartErr)
		}
		m.mu.Lock()
		browser = m.browser
		m.mu.Unlock()
		incognito, err = browser.Context(ctx).Incognito()
		if err != nil {
			return nil, fmt.Errorf("failed to create incognito context: %w", err)
		}
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	id := uuid.NewString()
	return &Session{
		id:      id,
		baseURL: baseURL,
		browser: incognito,
		page:    page,
		timeout: timeout,
		log:     m.log.WithSession(id),
	}, nil
}

func (m *Manager) ensureStarted(ctx context.Context) error {
	if m.IsRunning() {
		return nil
	}

	m.restartMu.Lock()
	defer m.restartMu.Unlock()

	if m.IsRunning() {
		return nil
	}
	return m.Start(ctx)
}

func (m *Manager) restart(ctx context.Context) error {
	m.restartMu.Lock()
	defer m.restartMu.Unlock()

	if err := m.Stop(); err != nil {
		m.log.Warn("failed to stop browser before restart", "cause", err.Error())
	}
	return m.Start(ctx)
}
