package scenario

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-e2e/internal/logging"
	"booker-e2e/internal/verify"
)

func discardLogger() *logging.Logger {
	return logging.NewWithWriter("runner", slog.LevelInfo, io.Discard)
}

// fakeFactory hands out bare sessions and counts cleanups.
type fakeFactory struct {
	mu       sync.Mutex
	sessions int
	cleanups int
}

func (f *fakeFactory) new(ctx context.Context, name string) (*Session, func(), error) {
	f.mu.Lock()
	f.sessions++
	f.mu.Unlock()

	sess := &Session{
		ID:   name,
		Log:  discardLogger(),
		Soft: verify.NewCollector(discardLogger()),
	}
	cleanup := func() {
		f.mu.Lock()
		f.cleanups++
		f.mu.Unlock()
	}
	return sess, cleanup, nil
}

func TestRunSerialOrder(t *testing.T) {
	factory := &fakeFactory{}
	runner := NewRunner(factory.new, discardLogger())

	var order []string
	step := func(name string) Scenario {
		return Scenario{
			Name:     name,
			Mutating: true,
			Run: func(ctx context.Context, s *Session) error {
				order = append(order, name)
				return nil
			},
		}
	}

	groups := []Group{{
		Name:      "lifecycle",
		Serial:    true,
		Scenarios: []Scenario{step("create"), step("update"), step("delete")},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"create", "update", "delete"}, order)
	assert.Equal(t, 3, factory.sessions)
	assert.Equal(t, 3, factory.cleanups)
}

func TestRunParallelFailureIsolation(t *testing.T) {
	factory := &fakeFactory{}
	runner := NewRunner(factory.new, discardLogger())

	var (
		mu  sync.Mutex
		ran []string
	)
	record := func(name string, err error) Scenario {
		return Scenario{
			Name: name,
			Run: func(ctx context.Context, s *Session) error {
				mu.Lock()
				ran = append(ran, name)
				mu.Unlock()
				return err
			},
		}
	}

	boom := errors.New("header mismatch")
	groups := []Group{{
		Name: "access checks",
		Scenarios: []Scenario{
			record("a", nil),
			record("b", boom),
			record("c", nil),
		},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 scenarios failed")
	assert.ErrorIs(t, err, boom)

	// The failing scenario must not have stopped its siblings.
	assert.Len(t, ran, 3)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			assert.Equal(t, "b", res.Scenario)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, factory.cleanups)
}

func TestRunRejectsMutatingInParallelGroup(t *testing.T) {
	factory := &fakeFactory{}
	runner := NewRunner(factory.new, discardLogger())

	groups := []Group{{
		Name: "misconfigured",
		Scenarios: []Scenario{{
			Name:     "creates a room",
			Mutating: true,
			Run:      func(ctx context.Context, s *Session) error { return nil },
		}},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "mutates shared entities")
	assert.Zero(t, factory.sessions)
}

func TestRunSurfacesSoftFailures(t *testing.T) {
	factory := &fakeFactory{}
	runner := NewRunner(factory.new, discardLogger())

	groups := []Group{{
		Name:   "public site",
		Serial: true,
		Scenarios: []Scenario{{
			Name: "room card",
			Run: func(ctx context.Context, s *Session) error {
				s.Soft.Equal("home page", "room type", "Single", "Double")
				s.Soft.Equal("home page", "room price", "100", "100")
				return nil
			},
		}},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room type")
	assert.NotContains(t, err.Error(), "room price")

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestRunJoinsRunAndSoftErrors(t *testing.T) {
	factory := &fakeFactory{}
	runner := NewRunner(factory.new, discardLogger())

	hard := errors.New("row never appeared")
	groups := []Group{{
		Name:   "inbox",
		Serial: true,
		Scenarios: []Scenario{{
			Name:     "open message",
			Mutating: true,
			Run: func(ctx context.Context, s *Session) error {
				s.Soft.Equal("messages page", "read marker", "read-true", "read-false")
				return hard
			},
		}},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.Error(t, err)
	assert.ErrorIs(t, err, hard)
	assert.Contains(t, err.Error(), "read marker")
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, hard)
}

func TestRunFactoryError(t *testing.T) {
	setupErr := errors.New("browser unreachable")
	factory := func(ctx context.Context, name string) (*Session, func(), error) {
		return nil, nil, setupErr
	}
	runner := NewRunner(factory, discardLogger())

	groups := []Group{{
		Name:      "any",
		Serial:    true,
		Scenarios: []Scenario{{Name: "s", Run: func(ctx context.Context, s *Session) error { return nil }}},
	}}

	results, err := runner.Run(context.Background(), groups)
	require.Error(t, err)
	assert.ErrorIs(t, err, setupErr)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, setupErr)
}
