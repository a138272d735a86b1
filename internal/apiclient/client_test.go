package apiclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-e2e/internal/logging"
	"booker-e2e/internal/model"
	"booker-e2e/internal/stubserver"
)

func discardLogger() *logging.Logger {
	return logging.NewWithWriter("apiclient", slog.LevelInfo, io.Discard)
}

// newStubClient serves the stub platform over a real listener and returns a
// client pointed at it.
func newStubClient(t *testing.T) (*Client, string) {
	t.Helper()

	stub := stubserver.New(stubserver.Credentials{Username: "admin", Password: "password"})
	srv := httptest.NewServer(adaptor.FiberApp(stub.App()))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, srv.Client(), discardLogger()), srv.URL
}

func seedRoom(t *testing.T, baseURL, number string) {
	t.Helper()

	body := `{"roomName":"` + number + `","type":"Single","roomPrice":"100"}`
	resp, err := http.Post(baseURL+"/room/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func dates(in, out string) model.DateRange {
	return model.DateRange{CheckIn: in, CheckOut: out}
}

func TestRoomByNumber(t *testing.T) {
	c, baseURL := newStubClient(t)
	seedRoom(t, baseURL, "101")

	room, err := c.RoomByNumber(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomName)
	assert.NotZero(t, room.RoomID)
}

func TestRoomByNumberMissing(t *testing.T) {
	c, _ := newStubClient(t)

	_, err := c.RoomByNumber(context.Background(), "999")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestBookRoomByNumber(t *testing.T) {
	c, baseURL := newStubClient(t)
	seedRoom(t, baseURL, "ABC103")

	booking := model.Booking{
		RoomNumber:  "ABC103",
		FirstName:   "FName",
		LastName:    "lastname",
		Price:       "4000",
		DepositPaid: model.Bool(false),
		Dates:       dates("2025-01-06", "2025-01-16"),
	}

	result, err := c.BookRoomByNumber(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Contains(t, string(result.Body), "bookingid")
}

func TestBookRoomByNumberConflict(t *testing.T) {
	c, baseURL := newStubClient(t)
	seedRoom(t, baseURL, "ABC103")

	first := model.Booking{
		RoomNumber: "ABC103",
		FirstName:  "FName",
		LastName:   "lastname",
		Dates:      dates("2025-01-06", "2025-01-16"),
	}
	_, err := c.BookRoomByNumber(context.Background(), first)
	require.NoError(t, err)

	overlapping := first
	overlapping.FirstName = "Second"
	overlapping.Dates = dates("2025-01-13", "2025-01-16")

	result, err := c.BookRoomByNumber(context.Background(), overlapping)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusConflict, result.Status)
}

func TestBookRoomByNumberStaleRoom(t *testing.T) {
	// A handcrafted backend that reports a room the booking endpoint then
	// refuses: the deleted-between-lookup-and-booking race, made deterministic.
	mux := http.NewServeMux()
	mux.HandleFunc("/room/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"rooms":[{"roomid":99,"roomName":"101","type":"Single","accessible":false}]}`)
	})
	mux.HandleFunc("/booking/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such room"}`, http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), discardLogger())
	booking := model.Booking{
		RoomNumber: "101",
		FirstName:  "F",
		LastName:   "L",
		Dates:      dates("2025-01-06", "2025-01-16"),
	}

	result, err := c.BookRoomByNumber(context.Background(), booking)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleRoom)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.Status)
}

func TestBookRoomByNumberValidates(t *testing.T) {
	c, _ := newStubClient(t)

	invalid := model.Booking{
		RoomNumber: "101",
		FirstName:  "F",
		LastName:   "L",
		Dates:      dates("2025-01-16", "2025-01-06"),
	}

	result, err := c.BookRoomByNumber(context.Background(), invalid)
	assert.Error(t, err)
	assert.Nil(t, result)
}
