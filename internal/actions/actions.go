// Package actions wraps every single UI interaction with a uniform contract:
// apply the interaction, emit one structured log record correlating the field
// label with the outcome, and re-raise failures so the caller decides policy.
package actions

import (
	"fmt"

	"booker-e2e/internal/logging"
	"booker-e2e/internal/verify"
)

// Element is the narrow interaction surface the wrapper needs from the
// browser engine. *rod.Element is adapted to it in the browser package; tests
// substitute fakes.
type Element interface {
	Input(value string) error
	SelectValue(value string) error
	Click() error
	Text() (string, error)
	Checked() (bool, error)
}

// InteractionError reports that a targeted element could not be acted on.
// The wrapper never retries; the error is logged and returned as-is.
type InteractionError struct {
	Op    string
	Field string
	Err   error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Field, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

// FillTextbox sets the element's text content to value.
func FillTextbox(log *logging.Logger, el Element, value, field string) error {
	if err := el.Input(value); err != nil {
		log.Error("error filling textbox", "field", field, "cause", err.Error())
		return &InteractionError{Op: "fill", Field: field, Err: err}
	}
	log.Info("filled textbox", "field", field)
	return nil
}

// SelectOption sets a choice-control's selected value.
func SelectOption(log *logging.Logger, el Element, option, field string) error {
	if err := el.SelectValue(option); err != nil {
		log.Error("error selecting option", "field", field, "option", option, "cause", err.Error())
		return &InteractionError{Op: "select", Field: field, Err: err}
	}
	log.Info("selected option", "field", field, "option", option)
	return nil
}

// Click activates the element. Failures are logged at error level and
// re-raised, never swallowed; whether a failed click is fatal is the
// caller's call.
func Click(log *logging.Logger, el Element, field string) error {
	if err := el.Click(); err != nil {
		log.Error("error clicking", "field", field, "cause", err.Error())
		return &InteractionError{Op: "click", Field: field, Err: err}
	}
	log.Info("clicked", "field", field)
	return nil
}

// SetToggle drives a boolean toggle to desired. Calling it again with the
// same value is a no-op: the current state is read first and the toggle is
// only clicked when it differs.
func SetToggle(log *logging.Logger, el Element, desired bool, field string) error {
	current, err := el.Checked()
	if err != nil {
		log.Error("error reading toggle", "field", field, "cause", err.Error())
		return &InteractionError{Op: "toggle", Field: field, Err: err}
	}
	if current == desired {
		log.Info("toggle already set", "field", field, "value", desired)
		return nil
	}
	if err := el.Click(); err != nil {
		log.Error("error setting toggle", "field", field, "cause", err.Error())
		return &InteractionError{Op: "toggle", Field: field, Err: err}
	}
	log.Info("toggle set", "field", field, "value", desired)
	return nil
}

// AssertHeaderRow compares the rendered text of a header row's cells against
// the expected ordered column labels and names the page on mismatch.
func AssertHeaderRow(log *logging.Logger, cells []Element, expected []string, page string) error {
	if len(cells) != len(expected) {
		err := &verify.Failure{
			Page:     page,
			Field:    "header row",
			Expected: fmt.Sprintf("%d columns %v", len(expected), expected),
			Actual:   fmt.Sprintf("%d columns", len(cells)),
		}
		log.Error("header row mismatch", "page", page, "cause", err.Error())
		return err
	}
	for i, cell := range cells {
		text, err := cell.Text()
		if err != nil {
			log.Error("error reading header cell", "page", page, "cause", err.Error())
			return &InteractionError{Op: "read header", Field: expected[i], Err: err}
		}
		if text != expected[i] {
			failure := &verify.Failure{
				Page:     page,
				Field:    fmt.Sprintf("header column %d", i+1),
				Expected: expected[i],
				Actual:   text,
			}
			log.Error("header row mismatch", "page", page, "cause", failure.Error())
			return failure
		}
	}
	log.Info("header row verified", "page", page)
	return nil
}
