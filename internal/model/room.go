package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RoomType is the platform's room category.
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeSuite  RoomType = "Suite"
	RoomTypeFamily RoomType = "Family"
	RoomTypeTwin   RoomType = "Twin"
)

// NoFeaturesText is the exact string the platform renders for a room with no
// features, in both the list and detail views.
const NoFeaturesText = "No features added to the room"

// Room is a room record as entered in the admin panel. Number is the business
// key: globally unique among live rooms. Description and Image are optional
// and only asserted when set.
type Room struct {
	Number      string    `json:"number"`
	Type        RoomType  `json:"type"`
	Accessible  bool      `json:"accessible"`
	Price       string    `json:"price"`
	Features    []Feature `json:"features"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// Validate checks the record is well formed enough to submit.
func (r Room) Validate() error {
	if r.Number == "" {
		return fmt.Errorf("room number is required")
	}
	switch r.Type {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeFamily, RoomTypeTwin:
	default:
		return fmt.Errorf("unknown room type %q", r.Type)
	}
	if r.Price == "" {
		return fmt.Errorf("room price is required")
	}
	return ValidateFeatures(r.Features)
}

// FeaturesText renders the feature list exactly as the platform does: a
// comma-space join, or the fixed fallback when the room has no features.
func (r Room) FeaturesText() string {
	if len(r.Features) == 0 {
		return NoFeaturesText
	}
	parts := make([]string, len(r.Features))
	for i, f := range r.Features {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// ListRowText is the full text of the room's row in the admin rooms list.
// The "\n\r" joiner mirrors how the row's cells read back as inner text; it
// is an exact-match contract.
func (r Room) ListRowText() string {
	return strings.Join([]string{
		r.Number,
		string(r.Type),
		strconv.FormatBool(r.Accessible),
		r.Price,
		r.FeaturesText(),
	}, "\n\r")
}
