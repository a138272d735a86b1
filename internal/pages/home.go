package pages

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"booker-e2e/internal/actions"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
	"booker-e2e/internal/verify"
)

const (
	homePageName = "home page"
	// defaultRoomDescription is what the platform renders for a room whose
	// description was never filled in.
	defaultRoomDescription = "Please enter a description for this room"
)

// HomePage is the public site: room listing plus the contact form. It is
// reachable at any time without authentication.
type HomePage struct {
	sess *browser.Session
	log  *logging.Logger
}

// NewHomePage binds a public-site screen object to a session.
func NewHomePage(sess *browser.Session) *HomePage {
	return &HomePage{sess: sess, log: sess.Log()}
}

// Goto navigates to the public site root.
func (p *HomePage) Goto() error {
	return p.sess.Navigate("/")
}

func (p *HomePage) fillContactField(testID, value, field string) error {
	el, err := p.sess.ByTestID(testID)
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), value, field)
}

// SubmitContactForm fills and submits the contact form, then checks the
// acknowledgement text against the exact template.
func (p *HomePage) SubmitContactForm(msg model.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := p.fillContactField("ContactName", msg.Name, "contact name"); err != nil {
		return err
	}
	if err := p.fillContactField("ContactEmail", msg.Email, "contact email"); err != nil {
		return err
	}
	if err := p.fillContactField("ContactPhone", msg.Phone, "contact phone"); err != nil {
		return err
	}
	if err := p.fillContactField("ContactSubject", msg.Subject, "contact subject"); err != nil {
		return err
	}
	if err := p.fillContactField("ContactDescription", msg.Message, "contact message"); err != nil {
		return err
	}

	submit, err := p.sess.ByText("button", "Submit")
	if err != nil {
		return err
	}
	if err := actions.Click(p.log, browser.Wrap(submit), "submit button"); err != nil {
		return err
	}

	if err := p.sess.WaitGone("button", "Submit"); err != nil {
		return fmt.Errorf("contact form did not submit: %w", err)
	}
	return p.waitConfirmation(msg)
}

// AssertRoom soft-checks a public room card against the room record. Each
// attribute failure is recorded on the collector so every mismatch is visible
// together; structural checks on the public site never halt a scenario on
// their own.
func (p *HomePage) AssertRoom(c *verify.Collector, room model.Room) {
	card, err := p.roomCard(room.Number)
	if err != nil {
		c.Error(homePageName, "room card "+room.Number, err)
		return
	}

	expectedDescription := room.Description
	if expectedDescription == "" {
		expectedDescription = defaultRoomDescription
	}
	p.assertCardText(c, card, "p", "room description "+room.Number, expectedDescription)
	p.assertCardText(c, card, "h3", "room type "+room.Number, string(room.Type))

	if len(room.Features) > 0 {
		expectedFeatures := ""
		for _, f := range room.Features {
			expectedFeatures += string(f)
		}
		p.assertCardText(c, card, "ul", "room features "+room.Number, expectedFeatures)
	}

	p.assertAccessibility(c, card, room)

	p.log.Info("room card checked", "room", room.Number)
}

func (p *HomePage) roomCard(number string) (*rod.Element, error) {
	xp := fmt.Sprintf(`//div[div[contains(@class,"hotel-room-info")]][.//img[contains(@alt,%q)]]`, number)
	return p.sess.ByXPath(xp)
}

func (p *HomePage) assertCardText(c *verify.Collector, card *rod.Element, sel, field, expected string) {
	el, err := card.Element(sel)
	if err != nil {
		c.Error(homePageName, field, err)
		return
	}
	actual, err := el.Text()
	if err != nil {
		c.Error(homePageName, field, err)
		return
	}
	c.Equal(homePageName, field, expected, actual)
}

// assertAccessibility checks the wheelchair marker is shown exactly when the
// room is accessible. Treated as a soft structural check like every other
// card attribute.
func (p *HomePage) assertAccessibility(c *verify.Collector, card *rod.Element, room model.Room) {
	has, marker, err := card.Has("span.wheelchair")
	if err != nil {
		c.Error(homePageName, "room accessibility "+room.Number, err)
		return
	}
	shown := false
	if has {
		if visible, visErr := marker.Visible(); visErr == nil {
			shown = visible
		}
	}
	c.Equal(homePageName, "room accessibility "+room.Number,
		fmt.Sprintf("marker shown: %t", room.Accessible),
		fmt.Sprintf("marker shown: %t", shown))
}

func (p *HomePage) waitConfirmation(msg model.ContactMessage) error {
	expected := msg.ConfirmationText()
	deadline := time.Now().Add(p.sess.Timeout())
	last := ""
	for {
		el, err := p.sess.BySelector("div.contact div div")
		if err == nil {
			if text, textErr := el.Text(); textErr == nil {
				last = text
				if text == expected {
					p.log.Info("contact form submission verified", "subject", msg.Subject)
					return nil
				}
			}
		}
		if time.Now().After(deadline) {
			return &verify.Failure{
				Page:     homePageName,
				Field:    "contact confirmation",
				Expected: expected,
				Actual:   last,
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}
