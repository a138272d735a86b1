// Package scenario orchestrates sequences of screen-object operations and
// asserts end states. Groups of read-only scenarios run in parallel; groups
// that mutate shared server-side entities run serially, which is how the
// entity namespace (room numbers, message identities) stays collision-free.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"booker-e2e/internal/apiclient"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/verify"
)

// Session bundles everything one scenario owns exclusively: an isolated UI
// session, the out-of-band API client, a scoped logger and a soft-assertion
// collector whose failures surface when the scenario ends.
type Session struct {
	ID      string
	Browser *browser.Session
	API     *apiclient.Client
	Log     *logging.Logger
	Soft    *verify.Collector
}

// SessionFactory creates a Session for a named scenario plus a cleanup
// function. The runner calls cleanup when the scenario ends, whatever the
// outcome.
type SessionFactory func(ctx context.Context, scenarioName string) (*Session, func(), error)

// Scenario is one executable test case. Mutating scenarios touch shared
// server-side entities and may only appear in serial groups.
type Scenario struct {
	Name     string
	Mutating bool
	Run      func(ctx context.Context, s *Session) error
}

// Group is an ordered set of scenarios executed together. Serial groups run
// in order; parallel groups run every scenario concurrently, each with its
// own session.
type Group struct {
	Name      string
	Serial    bool
	Scenarios []Scenario
}

// Result is the outcome of one scenario.
type Result struct {
	Group    string
	Scenario string
	Err      error
	Duration time.Duration
}

// Runner executes scenario groups against sessions from its factory.
type Runner struct {
	factory SessionFactory
	log     *logging.Logger
}

// NewRunner creates a runner.
func NewRunner(factory SessionFactory, log *logging.Logger) *Runner {
	return &Runner{factory: factory, log: log}
}

// Run executes every group and returns all results. The returned error is
// non-nil when any scenario failed or when a group is misconfigured; a failed
// scenario never affects its siblings.
func (r *Runner) Run(ctx context.Context, groups []Group) ([]Result, error) {
	for _, g := range groups {
		if g.Serial {
			continue
		}
		for _, sc := range g.Scenarios {
			if sc.Mutating {
				return nil, fmt.Errorf("group %q runs in parallel but scenario %q mutates shared entities", g.Name, sc.Name)
			}
		}
	}

	var (
		mu      sync.Mutex
		results []Result
	)

	for _, g := range groups {
		r.log.Info("running scenario group", "group", g.Name, "serial", g.Serial, "scenarios", len(g.Scenarios))

		if g.Serial {
			for _, sc := range g.Scenarios {
				results = append(results, r.runOne(ctx, g, sc))
			}
			continue
		}

		eg, egCtx := errgroup.WithContext(ctx)
		for _, sc := range g.Scenarios {
			sc := sc
			eg.Go(func() error {
				res := r.runOne(egCtx, g, sc)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				// Failures are reported through results; returning nil keeps
				// sibling scenarios running.
				return nil
			})
		}
		_ = eg.Wait()
	}

	var failures []error
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, fmt.Errorf("%s/%s: %w", res.Group, res.Scenario, res.Err))
		}
	}
	if len(failures) > 0 {
		return results, fmt.Errorf("%d of %d scenarios failed: %w", len(failures), len(results), errors.Join(failures...))
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, g Group, sc Scenario) Result {
	start := time.Now()
	log := r.log.WithScenario(sc.Name)
	log.Info("scenario started", "group", g.Name)

	sess, cleanup, err := r.factory(ctx, sc.Name)
	if err != nil {
		log.Error("scenario session setup failed", "cause", err.Error())
		return Result{Group: g.Name, Scenario: sc.Name, Err: err, Duration: time.Since(start)}
	}
	defer cleanup()

	runErr := sc.Run(ctx, sess)
	softErr := sess.Soft.Err()
	switch {
	case runErr != nil && softErr != nil:
		runErr = errors.Join(runErr, softErr)
	case runErr == nil:
		runErr = softErr
	}

	if runErr != nil {
		log.Error("scenario failed", "group", g.Name, "cause", runErr.Error())
	} else {
		log.Info("scenario completed", "group", g.Name, "duration", time.Since(start).String())
	}
	return Result{Group: g.Name, Scenario: sc.Name, Err: runErr, Duration: time.Since(start)}
}
