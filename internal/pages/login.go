// Package pages models each navigable UI state of the booking platform as a
// screen object: element accessors plus composed operations built from the
// action wrapper. Operations that navigate return the destination screen, so
// a scenario can only call what the current screen legally offers.
package pages

import (
	"errors"

	"booker-e2e/internal/actions"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
)

// ErrAuth means login did not reach the authenticated state: the screen
// stayed on the login form and the post-login marker never appeared.
var ErrAuth = errors.New("login did not reach the authenticated state")

// LoginPage is the admin panel's unauthenticated entry screen.
type LoginPage struct {
	sess *browser.Session
	log  *logging.Logger
}

// NewLoginPage binds a login screen object to a session.
func NewLoginPage(sess *browser.Session) *LoginPage {
	return &LoginPage{sess: sess, log: sess.Log()}
}

// Goto navigates to the admin panel, which shows the login form when the
// session is unauthenticated.
func (p *LoginPage) Goto() error {
	return p.sess.Navigate("/#/admin")
}

// FillUsername fills the username field. The login inputs carry no accessible
// name, so they are addressed by id.
func (p *LoginPage) FillUsername(username string) error {
	el, err := p.sess.BySelector("#username")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), username, "username")
}

// FillPassword fills the password field.
func (p *LoginPage) FillPassword(password string) error {
	el, err := p.sess.BySelector("#password")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), password, "password")
}

// ClickLogin submits the form.
func (p *LoginPage) ClickLogin() error {
	el, err := p.sess.ByText("button", "Login")
	if err != nil {
		return err
	}
	return actions.Click(p.log, browser.Wrap(el), "login button")
}

// Login performs the full transition to the rooms list. Rejected credentials
// leave the UI on the login form with a visible error; that manifests here as
// the post-login marker never appearing, reported as ErrAuth.
func (p *LoginPage) Login(username, password string) (*RoomsPage, error) {
	if err := p.Goto(); err != nil {
		return nil, err
	}
	if err := p.FillUsername(username); err != nil {
		return nil, err
	}
	if err := p.FillPassword(password); err != nil {
		return nil, err
	}
	if err := p.ClickLogin(); err != nil {
		return nil, err
	}

	rooms := NewRoomsPage(p.sess)
	if !rooms.LoggedIn() {
		return nil, ErrAuth
	}
	return rooms, nil
}
