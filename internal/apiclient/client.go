// Package apiclient drives the booking platform's HTTP API out-of-band so
// scenarios can cross-check API effects against UI state.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
)

var (
	// ErrRoomNotFound means no live room carries the requested business key.
	ErrRoomNotFound = errors.New("room not found")
	// ErrConflict means the requested dates overlap an existing booking for
	// the room. Expected outcome in negative-booking scenarios.
	ErrConflict = errors.New("booking dates conflict with an existing booking")
	// ErrStaleRoom means the room id resolved by the lookup no longer exists
	// by the time the booking request lands. The lookup and the booking are
	// two calls with no locking between them; a concurrent deletion surfaces
	// here instead of as an opaque status.
	ErrStaleRoom = errors.New("room was deleted between lookup and booking")
)

// RoomRecord is a room as the read-side API reports it. RoomID is the
// internal identifier bookings must carry; RoomName is the business key.
type RoomRecord struct {
	RoomID     int    `json:"roomid"`
	RoomName   string `json:"roomName"`
	Type       string `json:"type"`
	Accessible bool   `json:"accessible"`
}

// BookingResult is the raw outcome of a booking attempt, returned alongside
// any error so callers can inspect the status themselves.
type BookingResult struct {
	Status int
	Body   []byte
}

// Client talks to the platform API rooted at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logging.Logger
}

// NewClient creates an API client. A nil httpClient gets a default with a
// sane timeout.
func NewClient(baseURL string, httpClient *http.Client, log *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient, log: log}
}

// Rooms fetches every live room from GET /room/.
func (c *Client) Rooms(ctx context.Context) ([]RoomRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/room/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rooms request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rooms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rooms request returned status %d", resp.StatusCode)
	}

	var body struct {
		Rooms []RoomRecord `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rooms response: %w", err)
	}
	return body.Rooms, nil
}

// RoomByNumber resolves a room business key to its API record.
func (c *Client) RoomByNumber(ctx context.Context, number string) (RoomRecord, error) {
	rooms, err := c.Rooms(ctx)
	if err != nil {
		return RoomRecord{}, err
	}
	for _, room := range rooms {
		if room.RoomName == number {
			return room, nil
		}
	}
	return RoomRecord{}, fmt.Errorf("room %q: %w", number, ErrRoomNotFound)
}

type bookingPayload struct {
	RoomID       int             `json:"roomid"`
	FirstName    string          `json:"firstname"`
	LastName     string          `json:"lastname"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Price        string          `json:"price,omitempty"`
	DepositPaid  *bool           `json:"depositpaid,omitempty"`
	BookingDates model.DateRange `json:"bookingdates"`
}

// BookRoomByNumber resolves the booking's room number to the internal room id
// and posts the booking. 201 returns a nil error, 409 maps to ErrConflict,
// and a rejected room id after a successful lookup maps to ErrStaleRoom.
// The raw result is returned in every case the request completed.
func (c *Client) BookRoomByNumber(ctx context.Context, b model.Booking) (*BookingResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	room, err := c.RoomByNumber(ctx, b.RoomNumber)
	if err != nil {
		return nil, err
	}

	payload := bookingPayload{
		RoomID:       room.RoomID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Email:        b.Email,
		Phone:        b.Phone,
		Price:        b.Price,
		DepositPaid:  b.DepositPaid,
		BookingDates: b.Dates,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/booking/", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	result := &BookingResult{Status: resp.StatusCode, Body: body}

	c.log.Info("booking submitted",
		"room", b.RoomNumber,
		"roomid", room.RoomID,
		"status", resp.StatusCode,
	)

	switch resp.StatusCode {
	case http.StatusCreated:
		return result, nil
	case http.StatusConflict:
		return result, fmt.Errorf("room %q %s to %s: %w", b.RoomNumber, b.Dates.CheckIn, b.Dates.CheckOut, ErrConflict)
	case http.StatusNotFound, http.StatusBadRequest:
		return result, fmt.Errorf("room %q (id %d): %w", b.RoomNumber, room.RoomID, ErrStaleRoom)
	default:
		return result, fmt.Errorf("booking request returned status %d", resp.StatusCode)
	}
}
