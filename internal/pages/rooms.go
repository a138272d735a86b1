package pages

import (
	"fmt"
	"strconv"

	"booker-e2e/internal/actions"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
	"booker-e2e/internal/verify"
)

const (
	roomsPageName   = "rooms page"
	roomRowSelector = "div.row.detail"
)

var roomsHeaderCells = []string{"Room #", "Type", "Accessible", "Price", "Room details"}

// RoomsPage is the authenticated admin rooms list with its creation form.
type RoomsPage struct {
	sess *browser.Session
	log  *logging.Logger
}

// NewRoomsPage binds a rooms-list screen object to a session.
func NewRoomsPage(sess *browser.Session) *RoomsPage {
	return &RoomsPage{sess: sess, log: sess.Log()}
}

// LoggedIn reports whether the post-login marker (the Logout link) is
// visible.
func (p *RoomsPage) LoggedIn() bool {
	return p.sess.Visible("a", "Logout")
}

// VerifyLoggedIn fails with ErrAuth when the session is not authenticated.
func (p *RoomsPage) VerifyLoggedIn() error {
	if !p.LoggedIn() {
		return ErrAuth
	}
	p.log.Info("user is logged in")
	return nil
}

// VerifyHeaderRow checks the list's column labels in order.
func (p *RoomsPage) VerifyHeaderRow() error {
	els, err := p.sess.Elements("div.rowHeader p")
	if err != nil {
		return err
	}
	cells := make([]actions.Element, len(els))
	for i, el := range els {
		cells[i] = browser.Wrap(el)
	}
	return actions.AssertHeaderRow(p.log, cells, roomsHeaderCells, roomsPageName)
}

// FillRoomNumber fills the room number field of the creation form.
func (p *RoomsPage) FillRoomNumber(number string) error {
	el, err := p.sess.ByTestID("roomName")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), number, "room number")
}

// SelectRoomType picks the room type.
func (p *RoomsPage) SelectRoomType(roomType model.RoomType) error {
	el, err := p.sess.BySelector("#type")
	if err != nil {
		return err
	}
	return actions.SelectOption(p.log, browser.Wrap(el), string(roomType), "room type")
}

// SelectAccessibility picks the accessibility flag.
func (p *RoomsPage) SelectAccessibility(accessible bool) error {
	el, err := p.sess.BySelector("#accessible")
	if err != nil {
		return err
	}
	return actions.SelectOption(p.log, browser.Wrap(el), strconv.FormatBool(accessible), "room accessibility")
}

// FillRoomPrice fills the price field.
func (p *RoomsPage) FillRoomPrice(price string) error {
	el, err := p.sess.BySelector("#roomPrice")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), price, "room price")
}

// CheckFeatures sets the requested feature toggles on the creation form. The
// form starts fresh, so only the requested subset is touched; contrast with
// RoomDetailPage.CheckFeatures, which must reconcile retained state.
func (p *RoomsPage) CheckFeatures(features []model.Feature) error {
	for _, f := range features {
		el, err := featureToggle(p.sess, f)
		if err != nil {
			return err
		}
		if err := actions.SetToggle(p.log, browser.Wrap(el), true, string(f)); err != nil {
			return err
		}
	}
	p.log.Info("checked room feature toggles", "count", len(features))
	return nil
}

// ClickCreate submits the creation form.
func (p *RoomsPage) ClickCreate() error {
	el, err := p.sess.ByText("button", "Create")
	if err != nil {
		return err
	}
	return actions.Click(p.log, browser.Wrap(el), "create button")
}

// CreateRoom fills the whole form, submits it, and synchronously verifies the
// newly listed row matches room field for field.
func (p *RoomsPage) CreateRoom(room model.Room) error {
	if err := room.Validate(); err != nil {
		return err
	}
	if err := p.FillRoomNumber(room.Number); err != nil {
		return err
	}
	if err := p.SelectRoomType(room.Type); err != nil {
		return err
	}
	if err := p.SelectAccessibility(room.Accessible); err != nil {
		return err
	}
	if err := p.FillRoomPrice(room.Price); err != nil {
		return err
	}
	if err := p.CheckFeatures(room.Features); err != nil {
		return err
	}
	if err := p.ClickCreate(); err != nil {
		return err
	}
	return p.VerifyRoomData(room)
}

// VerifyRoomData checks that exactly one list row matches room.Number and
// that its full text equals the room's projection.
func (p *RoomsPage) VerifyRoomData(room model.Room) error {
	expected := room.ListRowText()
	actual, err := p.sess.WaitRowText(roomRowSelector, expected, room.Number)
	if err != nil || actual != expected {
		failure := &verify.Failure{
			Page:     roomsPageName,
			Field:    "room row " + room.Number,
			Expected: expected,
			Actual:   actual,
			Cause:    err,
		}
		p.log.Error("room data mismatch", "room", room.Number, "cause", failure.Error())
		return failure
	}
	p.log.Info("room data verified", "room", room.Number)
	return nil
}

// DeleteRoom triggers the delete control scoped to the row matching
// room.Number and waits until zero rows match. The post-check tolerates the
// row disappearing before it runs.
func (p *RoomsPage) DeleteRoom(room model.Room) error {
	row, err := p.sess.FindRow(roomRowSelector, room.Number)
	if err != nil {
		return fmt.Errorf("failed to locate room %q for deletion: %w", room.Number, err)
	}
	del, err := row.Element(".roomDelete")
	if err != nil {
		return fmt.Errorf("no delete control on room %q row: %w", room.Number, err)
	}
	if err := actions.Click(p.log, browser.Wrap(del), "delete room"); err != nil {
		return err
	}
	if err := p.sess.WaitRowCount(roomRowSelector, 0, room.Number); err != nil {
		return fmt.Errorf("room %q still listed after deletion: %w", room.Number, err)
	}
	p.log.Info("room deletion verified", "room", room.Number)
	return nil
}

// OpenRoomDetail navigates into the room's detail screen.
func (p *RoomsPage) OpenRoomDetail(room model.Room) (*RoomDetailPage, error) {
	row, err := p.sess.FindRow(roomRowSelector, room.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to locate room %q: %w", room.Number, err)
	}
	if err := actions.Click(p.log, browser.Wrap(row), "room data row"); err != nil {
		return nil, err
	}
	p.log.Info("navigated to room detail page", "room", room.Number)
	return NewRoomDetailPage(p.sess), nil
}

// OpenInbox navigates to the message inbox via the inbox icon's link.
func (p *RoomsPage) OpenInbox() (*MessagesPage, error) {
	icon, err := p.sess.BySelector("i.fa-inbox")
	if err != nil {
		return nil, err
	}
	link, err := icon.Parent()
	if err != nil {
		return nil, fmt.Errorf("inbox icon has no link parent: %w", err)
	}
	if err := actions.Click(p.log, browser.Wrap(link), "inbox message link"); err != nil {
		return nil, err
	}
	p.log.Info("navigated to message page")
	return NewMessagesPage(p.sess), nil
}
