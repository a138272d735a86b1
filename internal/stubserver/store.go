package stubserver

import (
	"errors"
	"fmt"
	"sync"

	"booker-e2e/internal/model"
)

var (
	errRoomExists   = errors.New("room number already in use")
	errRoomUnknown  = errors.New("no such room")
	errOverlap      = errors.New("booking dates overlap an existing booking")
	errMsgUnknown   = errors.New("no such message")
	errBadDateRange = errors.New("invalid booking dates")
)

// roomRecord is a stored room with its internal id.
type roomRecord struct {
	RoomID      int             `json:"roomid"`
	RoomName    string          `json:"roomName"`
	Type        model.RoomType  `json:"type"`
	Accessible  bool            `json:"accessible"`
	RoomPrice   string          `json:"roomPrice"`
	Features    []model.Feature `json:"features"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

type bookingRecord struct {
	BookingID   int             `json:"bookingid"`
	RoomID      int             `json:"roomid"`
	FirstName   string          `json:"firstname"`
	LastName    string          `json:"lastname"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Price       string          `json:"price,omitempty"`
	DepositPaid *bool           `json:"depositpaid,omitempty"`
	Dates       model.DateRange `json:"bookingdates"`
}

type messageRecord struct {
	MessageID int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"description"`
	Read      bool   `json:"read"`
}

// store holds the stub platform's state. One mutex is enough: the stub exists
// for hermetic tests, not for load.
type store struct {
	mu       sync.Mutex
	rooms    map[int]*roomRecord
	bookings map[int]*bookingRecord
	messages map[int]*messageRecord
	nextID   int
}

func newStore() *store {
	return &store{
		rooms:    make(map[int]*roomRecord),
		bookings: make(map[int]*bookingRecord),
		messages: make(map[int]*messageRecord),
		nextID:   1,
	}
}

func (s *store) createRoom(r roomRecord) (*roomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.RoomName == r.RoomName {
			return nil, fmt.Errorf("room %q: %w", r.RoomName, errRoomExists)
		}
	}

	r.RoomID = s.nextID
	s.nextID++
	s.rooms[r.RoomID] = &r
	return &r, nil
}

func (s *store) listRooms() []*roomRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*roomRecord, 0, len(s.rooms))
	for id := 1; id < s.nextID; id++ {
		if r, ok := s.rooms[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *store) updateRoom(id int, r roomRecord) (*roomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[id]
	if !ok {
		return nil, errRoomUnknown
	}
	for otherID, other := range s.rooms {
		if otherID != id && other.RoomName == r.RoomName {
			return nil, fmt.Errorf("room %q: %w", r.RoomName, errRoomExists)
		}
	}
	r.RoomID = existing.RoomID
	s.rooms[id] = &r
	return &r, nil
}

func (s *store) deleteRoom(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return errRoomUnknown
	}
	delete(s.rooms, id)
	for bid, b := range s.bookings {
		if b.RoomID == id {
			delete(s.bookings, bid)
		}
	}
	return nil
}

func (s *store) createBooking(b bookingRecord) (*bookingRecord, error) {
	if err := b.Dates.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadDateRange, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[b.RoomID]; !ok {
		return nil, errRoomUnknown
	}
	for _, existing := range s.bookings {
		if existing.RoomID == b.RoomID && existing.Dates.Overlaps(b.Dates) {
			return nil, errOverlap
		}
	}

	b.BookingID = s.nextID
	s.nextID++
	s.bookings[b.BookingID] = &b
	return &b, nil
}

func (s *store) bookingsForRoom(roomID int) []*bookingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*bookingRecord
	for id := 1; id < s.nextID; id++ {
		if b, ok := s.bookings[id]; ok && b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out
}

func (s *store) createMessage(m messageRecord) *messageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.MessageID = s.nextID
	m.Read = false
	s.nextID++
	s.messages[m.MessageID] = &m
	return &m
}

func (s *store) listMessages() []*messageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*messageRecord, 0, len(s.messages))
	for id := 1; id < s.nextID; id++ {
		if m, ok := s.messages[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *store) markMessageRead(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return errMsgUnknown
	}
	m.Read = true
	return nil
}

func (s *store) deleteMessage(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return errMsgUnknown
	}
	delete(s.messages, id)
	return nil
}
