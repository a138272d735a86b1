package browser

import (
	"fmt"
	"regexp"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"booker-e2e/internal/actions"
)

// rodElement adapts a *rod.Element to the action wrapper's interaction
// surface.
type rodElement struct {
	el *rod.Element
}

// Wrap exposes a rod element to the actions package.
func Wrap(el *rod.Element) actions.Element {
	return rodElement{el: el}
}

func (e rodElement) Input(value string) error {
	// Replace, don't append: rod's Input types on top of existing content.
	if err := e.el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to select existing text: %w", err)
	}
	return e.el.Input(value)
}

func (e rodElement) SelectValue(value string) error {
	pattern := fmt.Sprintf("^%s$", regexp.QuoteMeta(value))
	return e.el.Select([]string{pattern}, true, rod.SelectorTypeRegex)
}

func (e rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e rodElement) Checked() (bool, error) {
	prop, err := e.el.Property("checked")
	if err != nil {
		return false, fmt.Errorf("failed to read checked state: %w", err)
	}
	return prop.Bool(), nil
}
