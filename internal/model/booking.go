package model

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is a half-open stay interval. CheckIn and CheckOut are ISO dates
// and CheckIn must precede CheckOut.
type DateRange struct {
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
}

// Validate parses both dates and checks ordering.
func (d DateRange) Validate() error {
	in, err := time.Parse(dateLayout, d.CheckIn)
	if err != nil {
		return fmt.Errorf("invalid checkin date %q: %w", d.CheckIn, err)
	}
	out, err := time.Parse(dateLayout, d.CheckOut)
	if err != nil {
		return fmt.Errorf("invalid checkout date %q: %w", d.CheckOut, err)
	}
	if !in.Before(out) {
		return fmt.Errorf("checkin %s must be before checkout %s", d.CheckIn, d.CheckOut)
	}
	return nil
}

// Overlaps reports whether two stays collide. A checkout day is treated as
// free for the next checkin, matching the platform's booking rule.
func (d DateRange) Overlaps(other DateRange) bool {
	aIn, err1 := time.Parse(dateLayout, d.CheckIn)
	aOut, err2 := time.Parse(dateLayout, d.CheckOut)
	bIn, err3 := time.Parse(dateLayout, other.CheckIn)
	bOut, err4 := time.Parse(dateLayout, other.CheckOut)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Booking references a room by its business key; the internal numeric room id
// is resolved at call time by the API client.
type Booking struct {
	RoomNumber  string    `json:"roomNumber"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Price       string    `json:"price,omitempty"`
	DepositPaid *bool     `json:"depositpaid,omitempty"`
	Dates       DateRange `json:"bookingdates"`
}

// Validate checks required fields and the date range.
func (b Booking) Validate() error {
	if b.RoomNumber == "" {
		return fmt.Errorf("booking room number is required")
	}
	if b.FirstName == "" || b.LastName == "" {
		return fmt.Errorf("booking guest name is required")
	}
	return b.Dates.Validate()
}

// RowText is the booking row's text on the room detail page: a straight
// concatenation of the rendered cells, no separators. An unset deposit flag
// contributes nothing to the row.
func (b Booking) RowText() string {
	deposit := ""
	if b.DepositPaid != nil {
		deposit = strconv.FormatBool(*b.DepositPaid)
	}
	return b.FirstName + b.LastName + b.Price + deposit + b.Dates.CheckIn + b.Dates.CheckOut
}

// Bool is a convenience for optional booking flags.
func Bool(v bool) *bool { return &v }
