package pages

import (
	"fmt"
	"strconv"
	"strings"

	"booker-e2e/internal/actions"
	"booker-e2e/internal/browser"
	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
	"booker-e2e/internal/verify"
)

const (
	roomDetailPageName = "room detail page"
	bookingRowSelector = "div.detail.booking"
	roomTitleSelector  = "div.room-details h2"
)

var bookingHeaderCells = []string{"First name", "Last name", "Price", "Deposit paid?", "Check in", "Check out"}

// RoomDetailPage shows one room's fields, its edit form, and the bookings
// held against it. Edit, update and cancel all stay on this screen.
type RoomDetailPage struct {
	sess *browser.Session
	log  *logging.Logger
}

// NewRoomDetailPage binds a room-detail screen object to a session.
func NewRoomDetailPage(sess *browser.Session) *RoomDetailPage {
	return &RoomDetailPage{sess: sess, log: sess.Log()}
}

// VerifyHeaderRow checks the booking table's column labels in order.
func (p *RoomDetailPage) VerifyHeaderRow() error {
	els, err := p.sess.Elements("div.rowHeader p")
	if err != nil {
		return err
	}
	cells := make([]actions.Element, len(els))
	for i, el := range els {
		cells[i] = browser.Wrap(el)
	}
	return actions.AssertHeaderRow(p.log, cells, bookingHeaderCells, roomDetailPageName)
}

// ClickEdit enters edit mode.
func (p *RoomDetailPage) ClickEdit() error {
	el, err := p.sess.ByText("button", "Edit")
	if err != nil {
		return err
	}
	return actions.Click(p.log, browser.Wrap(el), "edit button")
}

// ClickUpdate commits the edit form. The UI stays in edit mode when
// validation rejects the values; callers must re-verify.
func (p *RoomDetailPage) ClickUpdate() error {
	el, err := p.sess.ByText("button", "Update")
	if err != nil {
		return err
	}
	return actions.Click(p.log, browser.Wrap(el), "update button")
}

// ClickCancel abandons the edit form.
func (p *RoomDetailPage) ClickCancel() error {
	el, err := p.sess.ByText("button", "Cancel")
	if err != nil {
		return err
	}
	return actions.Click(p.log, browser.Wrap(el), "cancel button")
}

// FillRoomNumber fills the edit form's room number.
func (p *RoomDetailPage) FillRoomNumber(number string) error {
	el, err := p.sess.BySelector("input#roomName")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), number, "room number")
}

// SelectRoomType picks the room type in the edit form.
func (p *RoomDetailPage) SelectRoomType(roomType model.RoomType) error {
	el, err := p.sess.BySelector("#type")
	if err != nil {
		return err
	}
	return actions.SelectOption(p.log, browser.Wrap(el), string(roomType), "room type")
}

// SelectAccessibility picks the accessibility flag in the edit form.
func (p *RoomDetailPage) SelectAccessibility(accessible bool) error {
	el, err := p.sess.BySelector("#accessible")
	if err != nil {
		return err
	}
	return actions.SelectOption(p.log, browser.Wrap(el), strconv.FormatBool(accessible), "room accessibility")
}

// FillRoomPrice fills the edit form's price.
func (p *RoomDetailPage) FillRoomPrice(price string) error {
	el, err := p.sess.BySelector("#roomPrice")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), price, "room price")
}

// FillDescription fills the edit form's description.
func (p *RoomDetailPage) FillDescription(description string) error {
	el, err := p.sess.BySelector("#description")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), description, "room description")
}

// FillImageURL fills the edit form's image URL.
func (p *RoomDetailPage) FillImageURL(imageURL string) error {
	el, err := p.sess.BySelector("#image")
	if err != nil {
		return err
	}
	return actions.FillTextbox(p.log, browser.Wrap(el), imageURL, "room image url")
}

// CheckFeatures reconciles the feature toggles to exactly the requested
// subset: every known toggle is first driven to false, then the requested
// ones to true. The edit form retains the room's prior state, so unlike the
// creation form a plain set pass is not enough.
func (p *RoomDetailPage) CheckFeatures(features []model.Feature) error {
	for _, f := range featureResetOrder {
		el, err := featureToggle(p.sess, f)
		if err != nil {
			return err
		}
		if err := actions.SetToggle(p.log, browser.Wrap(el), false, string(f)); err != nil {
			return err
		}
	}
	for _, f := range features {
		el, err := featureToggle(p.sess, f)
		if err != nil {
			return err
		}
		if err := actions.SetToggle(p.log, browser.Wrap(el), true, string(f)); err != nil {
			return err
		}
	}
	p.log.Info("reconciled room feature toggles", "count", len(features))
	return nil
}

// UpdateRoom rewrites every room field and re-verifies the committed result.
// Precondition: the detail view is currently showing old.Number.
func (p *RoomDetailPage) UpdateRoom(old, updated model.Room) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	if _, err := p.sess.FindRow(roomTitleSelector, old.Number); err != nil {
		return fmt.Errorf("detail view is not showing room %q: %w", old.Number, err)
	}

	if err := p.ClickEdit(); err != nil {
		return err
	}
	if err := p.FillRoomNumber(updated.Number); err != nil {
		return err
	}
	if err := p.SelectRoomType(updated.Type); err != nil {
		return err
	}
	if err := p.SelectAccessibility(updated.Accessible); err != nil {
		return err
	}
	if err := p.FillRoomPrice(updated.Price); err != nil {
		return err
	}
	if err := p.CheckFeatures(updated.Features); err != nil {
		return err
	}
	if updated.Description != "" {
		if err := p.FillDescription(updated.Description); err != nil {
			return err
		}
	}
	if updated.Image != "" {
		if err := p.FillImageURL(updated.Image); err != nil {
			return err
		}
	}
	if err := p.ClickUpdate(); err != nil {
		return err
	}
	return p.VerifyRoomDetails(updated)
}

// VerifyRoomDetails batch-compares every rendered detail field against room.
// All mismatches are collected so a failed update reports everything at once.
// Description and image are only compared when the room provides them;
// absence is not asserted as empty.
func (p *RoomDetailPage) VerifyRoomDetails(room model.Room) error {
	if _, err := p.sess.FindRow(roomTitleSelector, room.Number); err != nil {
		return fmt.Errorf("detail view did not settle on room %q: %w", room.Number, err)
	}

	c := verify.NewCollector(p.log)

	if title, err := p.titleText(); err != nil {
		c.Error(roomDetailPageName, "room number", err)
	} else {
		c.True(roomDetailPageName, "room number "+room.Number, strings.Contains(title, room.Number))
	}

	p.compareField(c, "Type", "room type", string(room.Type))
	p.compareField(c, "Accessible", "room accessibility", strconv.FormatBool(room.Accessible))
	p.compareField(c, "Room price", "room price", room.Price)
	p.compareField(c, "Features", "room features", room.FeaturesText())

	if room.Description != "" {
		p.compareField(c, "Description", "room description", room.Description)
	}
	if room.Image != "" {
		if img, err := p.sess.BySelector("div.room-details img"); err != nil {
			c.Error(roomDetailPageName, "room image", err)
		} else if src, err := img.Attribute("src"); err != nil || src == nil {
			c.Error(roomDetailPageName, "room image", fmt.Errorf("image has no src attribute"))
		} else {
			c.Equal(roomDetailPageName, "room image", room.Image, *src)
		}
	}

	if err := c.Err(); err != nil {
		return err
	}
	p.log.Info("room details verified", "room", room.Number)
	return nil
}

// VerifyBookingData checks the booking row matching the guest's first and
// last name renders exactly the booking's projection. Both names are needed
// to scope the row; either alone may match several bookings.
func (p *RoomDetailPage) VerifyBookingData(b model.Booking) error {
	expected := b.RowText()
	actual, err := p.sess.WaitRowText(bookingRowSelector, expected, b.FirstName, b.LastName)
	if err != nil || actual != expected {
		failure := &verify.Failure{
			Page:     roomDetailPageName,
			Field:    fmt.Sprintf("booking row %s %s", b.FirstName, b.LastName),
			Expected: expected,
			Actual:   actual,
			Cause:    err,
		}
		p.log.Error("booking data mismatch", "cause", failure.Error())
		return failure
	}
	p.log.Info("booking data verified", "guest", b.FirstName+" "+b.LastName)
	return nil
}

func (p *RoomDetailPage) titleText() (string, error) {
	el, err := p.sess.BySelector(roomTitleSelector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *RoomDetailPage) compareField(c *verify.Collector, label, field, expected string) {
	el, err := p.sess.ByXPath(fmt.Sprintf(`//p[contains(text(),%q)]/span`, label))
	if err != nil {
		c.Error(roomDetailPageName, field, err)
		return
	}
	actual, err := el.Text()
	if err != nil {
		c.Error(roomDetailPageName, field, err)
		return
	}
	c.Equal(roomDetailPageName, field, expected, actual)
}
