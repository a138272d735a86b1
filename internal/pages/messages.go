package pages

import (
	"fmt"
	"time"

	"booker-e2e/internal/actions"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
	"booker-e2e/internal/verify"
)

const (
	messagesPageName   = "message page"
	messageRowSelector = "div.detail"
	// readRowClass is the row's class list once the message has been opened.
	readRowClass = "row detail read-true"
)

// MessagesPage is the admin message inbox.
type MessagesPage struct {
	sess *browser.Session
	log  *logging.Logger
}

// NewMessagesPage binds an inbox screen object to a session.
func NewMessagesPage(sess *browser.Session) *MessagesPage {
	return &MessagesPage{sess: sess, log: sess.Log()}
}

// OpenUnreadMessage locates the row matching both subject and name (several
// messages may share either field alone), opens it, checks the detail text
// against the exact concatenation contract, closes it, and confirms the row
// now carries the read state.
func (p *MessagesPage) OpenUnreadMessage(msg model.ContactMessage) error {
	row, err := p.sess.FindRow(messageRowSelector, msg.Subject, msg.Name)
	if err != nil {
		return fmt.Errorf("failed to locate message %q from %q: %w", msg.Subject, msg.Name, err)
	}
	if err := actions.Click(p.log, browser.Wrap(row), "message row"); err != nil {
		return err
	}

	detail, err := p.sess.ByTestID("message")
	if err != nil {
		return err
	}
	actual, err := detail.Text()
	if err != nil {
		return fmt.Errorf("failed to read message detail: %w", err)
	}
	if expected := msg.DetailText(); actual != expected {
		failure := &verify.Failure{
			Page:     messagesPageName,
			Field:    "message detail",
			Expected: expected,
			Actual:   actual,
		}
		p.log.Error("message detail mismatch", "cause", failure.Error())
		return failure
	}

	closeBtn, err := p.sess.ByText("button", "Close")
	if err != nil {
		return err
	}
	if err := actions.Click(p.log, browser.Wrap(closeBtn), "close message button"); err != nil {
		return err
	}

	if err := p.waitRowRead(msg); err != nil {
		return err
	}
	p.log.Info("message verified and marked read", "subject", msg.Subject)
	return nil
}

// DeleteMessage activates the row's delete control and waits for zero rows to
// match the composite filter.
func (p *MessagesPage) DeleteMessage(msg model.ContactMessage) error {
	row, err := p.sess.FindRow(messageRowSelector, msg.Subject, msg.Name)
	if err != nil {
		return fmt.Errorf("failed to locate message %q from %q: %w", msg.Subject, msg.Name, err)
	}
	del, err := row.Element(".fa-remove")
	if err != nil {
		return fmt.Errorf("no delete control on message row: %w", err)
	}
	if err := actions.Click(p.log, browser.Wrap(del), "delete message"); err != nil {
		return err
	}
	if err := p.sess.WaitRowCount(messageRowSelector, 0, msg.Subject, msg.Name); err != nil {
		return fmt.Errorf("message %q still listed after deletion: %w", msg.Subject, err)
	}
	p.log.Info("message deletion verified", "subject", msg.Subject)
	return nil
}

// waitRowRead polls the row's class list until it reflects the read state.
func (p *MessagesPage) waitRowRead(msg model.ContactMessage) error {
	deadline := time.Now().Add(p.sess.Timeout())
	last := ""
	for {
		row, err := p.sess.FindRow(messageRowSelector, msg.Subject, msg.Name)
		if err == nil {
			class, attrErr := row.Attribute("class")
			if attrErr == nil && class != nil {
				last = *class
				if last == readRowClass {
					return nil
				}
			}
		}
		if time.Now().After(deadline) {
			return &verify.Failure{
				Page:     messagesPageName,
				Field:    "message row state",
				Expected: readRowClass,
				Actual:   last,
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}
