// Package verify compares live UI state against entity projections. Checks
// come in two modes: hard checks return a *Failure immediately and the caller
// aborts, soft checks accumulate on a Collector and surface together when the
// scenario ends.
package verify

import (
	"errors"
	"fmt"
	"sync"

	"booker-e2e/internal/logging"
)

// Failure is a failed post-condition comparison. It carries enough context
// for triage without re-running: the page, the field label, both values and
// the underlying cause when one exists.
type Failure struct {
	Page     string
	Field    string
	Expected string
	Actual   string
	Cause    error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s: expected %q, got %q", f.Page, f.Field, f.Expected, f.Actual)
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Cause }

// Equal is a hard check: it returns a *Failure when actual differs from
// expected, nil otherwise.
func Equal(page, field, expected, actual string) error {
	if expected == actual {
		return nil
	}
	return &Failure{Page: page, Field: field, Expected: expected, Actual: actual}
}

// Collector records soft failures. It is safe for use from a single scenario;
// the mutex only guards against collectors shared across parallel read-only
// checks within one page operation.
type Collector struct {
	log *logging.Logger

	mu       sync.Mutex
	failures []*Failure
}

// NewCollector creates a soft-assertion collector logging through log.
func NewCollector(log *logging.Logger) *Collector {
	return &Collector{log: log}
}

// Record adds a failure to the batch and logs it.
func (c *Collector) Record(f *Failure) {
	c.mu.Lock()
	c.failures = append(c.failures, f)
	c.mu.Unlock()

	if c.log != nil {
		c.log.Error("soft assertion failed",
			"page", f.Page,
			"field", f.Field,
			"expected", f.Expected,
			"actual", f.Actual,
		)
	}
}

// Equal records a failure when actual differs from expected.
func (c *Collector) Equal(page, field, expected, actual string) {
	if expected == actual {
		return
	}
	c.Record(&Failure{Page: page, Field: field, Expected: expected, Actual: actual})
}

// True records a failure unless ok holds.
func (c *Collector) True(page, field string, ok bool) {
	if ok {
		return
	}
	c.Record(&Failure{Page: page, Field: field, Expected: "true", Actual: "false"})
}

// Error records a failure caused by err, if err is non-nil.
func (c *Collector) Error(page, field string, err error) {
	if err == nil {
		return
	}
	c.Record(&Failure{Page: page, Field: field, Expected: "no error", Actual: err.Error(), Cause: err})
}

// Failures returns the batch recorded so far.
func (c *Collector) Failures() []*Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

// Err joins all recorded failures into one error, or returns nil when every
// soft check passed.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.failures) == 0 {
		return nil
	}
	errs := make([]error, len(c.failures))
	for i, f := range c.failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
