package browser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"booker-e2e/internal/logging"
)

const pollInterval = 200 * time.Millisecond

// Session is one scenario's exclusive handle on a live UI context. Element
// lookup prefers semantic text/label matching, then test-scoped ids; raw CSS
// and XPath are last-resort fallbacks for markup that exposes neither.
type Session struct {
	id      string
	baseURL string
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
	log     *logging.Logger
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// Log returns the session-scoped logger.
func (s *Session) Log() *logging.Logger { return s.log }

// Timeout returns the per-interaction wait budget.
func (s *Session) Timeout() time.Duration { return s.timeout }

// Navigate loads baseURL+path and waits for the load event.
func (s *Session) Navigate(path string) error {
	target := strings.TrimRight(s.baseURL, "/") + path
	if err := s.page.Navigate(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	if err := s.page.Timeout(s.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for %s to load: %w", target, err)
	}
	s.log.Info("navigated", "url", target)
	return nil
}

// Close releases the incognito context and everything in it.
func (s *Session) Close() {
	if err := s.browser.Close(); err != nil {
		s.log.Warn("failed to close session context", "cause", err.Error())
	}
}

func (s *Session) p() *rod.Page {
	return s.page.Timeout(s.timeout)
}

// ByText finds the first element matching selector whose text equals name.
// This is the preferred lookup: buttons, links and labels are addressed by
// what the user reads, not by structure.
func (s *Session) ByText(selector, name string) (*rod.Element, error) {
	el, err := s.p().ElementR(selector, fmt.Sprintf(`/^%s$/`, regexp.QuoteMeta(name)))
	if err != nil {
		return nil, fmt.Errorf("no %s with text %q: %w", selector, name, err)
	}
	return el, nil
}

// ByTestID finds an element by its test-scoped data-testid attribute.
func (s *Session) ByTestID(id string) (*rod.Element, error) {
	el, err := s.p().Element(fmt.Sprintf(`[data-testid=%q]`, id))
	if err != nil {
		return nil, fmt.Errorf("no element with test id %q: %w", id, err)
	}
	return el, nil
}

// BySelector finds an element by CSS selector. Fallback for controls with no
// accessible name or test id.
func (s *Session) BySelector(sel string) (*rod.Element, error) {
	el, err := s.p().Element(sel)
	if err != nil {
		return nil, fmt.Errorf("no element matching %q: %w", sel, err)
	}
	return el, nil
}

// ByXPath finds an element by XPath. Fallback for text-adjacent values the
// markup gives no better handle on.
func (s *Session) ByXPath(xp string) (*rod.Element, error) {
	el, err := s.p().ElementX(xp)
	if err != nil {
		return nil, fmt.Errorf("no element matching xpath %q: %w", xp, err)
	}
	return el, nil
}

// Elements lists all current elements matching sel without waiting.
func (s *Session) Elements(sel string) (rod.Elements, error) {
	return s.page.Elements(sel)
}

// Visible polls until an element matching selector with the given text is
// present and visible, reporting false when the wait budget runs out.
func (s *Session) Visible(selector, name string) bool {
	pattern := fmt.Sprintf(`/^%s$/`, regexp.QuoteMeta(name))
	deadline := time.Now().Add(s.timeout)
	for {
		has, el, err := s.page.HasR(selector, pattern)
		if err == nil && has {
			if visible, visErr := el.Visible(); visErr == nil && visible {
				return true
			}
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// WaitGone polls until no visible element matches selector with the given
// text.
func (s *Session) WaitGone(selector, name string) error {
	pattern := fmt.Sprintf(`/^%s$/`, regexp.QuoteMeta(name))
	deadline := time.Now().Add(s.timeout)
	for {
		has, el, err := s.page.HasR(selector, pattern)
		if err == nil {
			if !has {
				return nil
			}
			if visible, visErr := el.Visible(); visErr == nil && !visible {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s with text %q still visible", selector, name)
		}
		time.Sleep(pollInterval)
	}
}

// FindRow polls for exactly one element matching sel whose text contains
// every filter. Rows render asynchronously after mutations, so absence is
// retried until the session timeout.
func (s *Session) FindRow(sel string, filters ...string) (*rod.Element, error) {
	deadline := time.Now().Add(s.timeout)
	for {
		matches, err := s.matchRows(sel, filters)
		if err == nil && len(matches) == 1 {
			return matches[0], nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("expected one row matching %v under %q, found %d", filters, sel, len(matches))
		}
		time.Sleep(pollInterval)
	}
}

// CountRows returns how many elements matching sel contain every filter.
func (s *Session) CountRows(sel string, filters ...string) (int, error) {
	matches, err := s.matchRows(sel, filters)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// WaitRowCount polls until the number of rows matching the filters equals
// want. It tolerates rows vanishing between the triggering action and the
// check.
func (s *Session) WaitRowCount(sel string, want int, filters ...string) error {
	deadline := time.Now().Add(s.timeout)
	for {
		matches, err := s.matchRows(sel, filters)
		if err == nil && len(matches) == want {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return err
			}
			return fmt.Errorf("expected %d rows matching %v under %q, found %d", want, filters, sel, len(matches))
		}
		time.Sleep(pollInterval)
	}
}

// WaitRowText polls until the row matching the filters renders exactly the
// expected text, returning the last rendered text on timeout.
func (s *Session) WaitRowText(sel string, expected string, filters ...string) (string, error) {
	deadline := time.Now().Add(s.timeout)
	last := ""
	for {
		matches, err := s.matchRows(sel, filters)
		if err == nil && len(matches) == 1 {
			text, textErr := matches[0].Text()
			if textErr == nil {
				last = text
				if text == expected {
					return text, nil
				}
			}
		}
		if time.Now().After(deadline) {
			return last, fmt.Errorf("row matching %v did not settle", filters)
		}
		time.Sleep(pollInterval)
	}
}

func (s *Session) matchRows(sel string, filters []string) ([]*rod.Element, error) {
	els, err := s.page.Elements(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", sel, err)
	}

	var matches []*rod.Element
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		ok := true
		for _, f := range filters {
			if !strings.Contains(text, f) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, el)
		}
	}
	return matches, nil
}
