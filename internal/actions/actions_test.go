package actions

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-e2e/internal/logging"
	"booker-e2e/internal/verify"
)

// fakeElement records interactions and can fail on demand.
type fakeElement struct {
	value   string
	checked bool
	text    string

	clicks  int
	inputs  int
	selects int

	failWith error
}

func (f *fakeElement) Input(value string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.inputs++
	f.value = value
	return nil
}

func (f *fakeElement) SelectValue(value string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.selects++
	f.value = value
	return nil
}

func (f *fakeElement) Click() error {
	if f.failWith != nil {
		return f.failWith
	}
	f.clicks++
	f.checked = !f.checked
	return nil
}

func (f *fakeElement) Text() (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.text, nil
}

func (f *fakeElement) Checked() (bool, error) {
	return f.checked, nil
}

func newTestLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewWithWriter("actions", slog.LevelInfo, &buf), &buf
}

func logRecords(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestFillTextboxEmitsOneRecord(t *testing.T) {
	log, buf := newTestLogger()
	el := &fakeElement{}

	require.NoError(t, FillTextbox(log, el, "RM1", "room number"))

	assert.Equal(t, "RM1", el.value)
	records := logRecords(buf)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "room number")
}

func TestFillTextboxFailure(t *testing.T) {
	log, buf := newTestLogger()
	cause := errors.New("not attached")
	el := &fakeElement{failWith: cause}

	err := FillTextbox(log, el, "RM1", "room number")
	require.Error(t, err)

	var interactionErr *InteractionError
	require.ErrorAs(t, err, &interactionErr)
	assert.Equal(t, "room number", interactionErr.Field)
	assert.ErrorIs(t, err, cause)
	require.Len(t, logRecords(buf), 1)
}

func TestClickReRaises(t *testing.T) {
	log, buf := newTestLogger()
	cause := errors.New("element not interactable")
	el := &fakeElement{failWith: cause}

	err := Click(log, el, "create button")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, logRecords(buf)[0], `"level":"ERROR"`)
}

func TestSetToggleIdempotent(t *testing.T) {
	log, _ := newTestLogger()
	el := &fakeElement{checked: false}

	require.NoError(t, SetToggle(log, el, true, "WiFi"))
	require.NoError(t, SetToggle(log, el, true, "WiFi"))

	// The second call must not produce a duplicate side effect.
	assert.True(t, el.checked)
	assert.Equal(t, 1, el.clicks)
}

func TestSetToggleReconciliation(t *testing.T) {
	log, _ := newTestLogger()

	// Toggle bank in an arbitrary retained state, as the room update form
	// presents it.
	toggles := map[string]*fakeElement{
		"WiFi":         {checked: true},
		"Refreshments": {checked: false},
		"TV":           {checked: true},
		"Safe":         {checked: false},
		"Radio":        {checked: true},
		"Views":        {checked: false},
	}

	// Reset all, then apply the requested subset.
	for name, el := range toggles {
		require.NoError(t, SetToggle(log, el, false, name))
	}
	for _, name := range []string{"Refreshments", "Radio"} {
		require.NoError(t, SetToggle(log, toggles[name], true, name))
	}

	assert.True(t, toggles["Refreshments"].checked)
	assert.True(t, toggles["Radio"].checked)
	for _, name := range []string{"WiFi", "TV", "Safe", "Views"} {
		assert.False(t, toggles[name].checked, name)
	}
}

func TestSelectOption(t *testing.T) {
	log, buf := newTestLogger()
	el := &fakeElement{}

	require.NoError(t, SelectOption(log, el, "Family", "room type"))
	assert.Equal(t, "Family", el.value)
	require.Len(t, logRecords(buf), 1)
}

func TestAssertHeaderRow(t *testing.T) {
	log, _ := newTestLogger()
	cells := []Element{
		&fakeElement{text: "Room #"},
		&fakeElement{text: "Type"},
		&fakeElement{text: "Accessible"},
		&fakeElement{text: "Price"},
		&fakeElement{text: "Room details"},
	}
	expected := []string{"Room #", "Type", "Accessible", "Price", "Room details"}

	require.NoError(t, AssertHeaderRow(log, cells, expected, "rooms page"))
}

func TestAssertHeaderRowMismatchNamesPage(t *testing.T) {
	log, _ := newTestLogger()
	cells := []Element{
		&fakeElement{text: "Room #"},
		&fakeElement{text: "Kind"},
	}

	err := AssertHeaderRow(log, cells, []string{"Room #", "Type"}, "rooms page")
	require.Error(t, err)

	var failure *verify.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "rooms page", failure.Page)
	assert.Equal(t, "Type", failure.Expected)
	assert.Equal(t, "Kind", failure.Actual)
}

func TestAssertHeaderRowColumnCount(t *testing.T) {
	log, _ := newTestLogger()
	cells := []Element{&fakeElement{text: "Room #"}}

	err := AssertHeaderRow(log, cells, []string{"Room #", "Type"}, "rooms page")
	require.Error(t, err)

	var failure *verify.Failure
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, failure.Actual, "1 columns")
}
