// Package stubserver is an in-process imitation of the booking platform's
// HTTP API. It exists so the API client and scenario layer can be exercised
// hermetically; it mirrors the platform's response shapes, not its internals.
package stubserver

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Credentials are the admin login the stub accepts.
type Credentials struct {
	Username string
	Password string
}

// Server wraps the fiber app and its backing store.
type Server struct {
	app   *fiber.App
	store *store
	creds Credentials
}

// New builds a stub platform server.
func New(creds Credentials) *Server {
	s := &Server{
		app:   fiber.New(fiber.Config{ErrorHandler: errorHandler, DisableStartupMessage: true}),
		store: newStore(),
		creds: creds,
	}
	s.routes()
	return s
}

// App exposes the fiber app for app.Test and for listening.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until shutdown.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) routes() {
	s.app.Post("/auth/login", s.login)

	s.app.Get("/room/", s.listRooms)
	s.app.Post("/room/", s.createRoom)
	s.app.Get("/room/:id", s.getRoom)
	s.app.Put("/room/:id", s.updateRoom)
	s.app.Delete("/room/:id", s.deleteRoom)

	s.app.Post("/booking/", s.createBooking)

	s.app.Get("/message/", s.listMessages)
	s.app.Post("/message/", s.createMessage)
	s.app.Put("/message/:id/read", s.markMessageRead)
	s.app.Delete("/message/:id", s.deleteMessage)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Username != s.creds.Username || req.Password != s.creds.Password {
		return fiber.NewError(fiber.StatusForbidden, "invalid credentials")
	}
	return c.JSON(fiber.Map{"token": uuid.NewString()})
}

func (s *Server) listRooms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"rooms": s.store.listRooms()})
}

func (s *Server) createRoom(c *fiber.Ctx) error {
	var room roomRecord
	if err := c.BodyParser(&room); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if room.RoomName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "roomName is required")
	}

	created, err := s.store.createRoom(room)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) getRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}
	for _, room := range s.store.listRooms() {
		if room.RoomID == id {
			return c.JSON(fiber.Map{
				"room":     room,
				"bookings": s.store.bookingsForRoom(id),
			})
		}
	}
	return fiber.NewError(fiber.StatusNotFound, errRoomUnknown.Error())
}

func (s *Server) updateRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}
	var room roomRecord
	if err := c.BodyParser(&room); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := s.store.updateRoom(id, room)
	switch {
	case errors.Is(err, errRoomUnknown):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, errRoomExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(updated)
}

func (s *Server) deleteRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid room id")
	}
	if err := s.store.deleteRoom(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) createBooking(c *fiber.Ctx) error {
	var booking bookingRecord
	if err := c.BodyParser(&booking); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := s.store.createBooking(booking)
	switch {
	case errors.Is(err, errRoomUnknown):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, errOverlap):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, errBadDateRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bookingid": created.BookingID,
		"booking":   created,
	})
}

func (s *Server) listMessages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"messages": s.store.listMessages()})
}

func (s *Server) createMessage(c *fiber.Ctx) error {
	var msg messageRecord
	if err := c.BodyParser(&msg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if msg.Name == "" || msg.Email == "" || msg.Phone == "" || msg.Subject == "" || msg.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "all contact fields are required")
	}
	created := s.store.createMessage(msg)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) markMessageRead(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}
	if err := s.store.markMessageRead(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) deleteMessage(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}
	if err := s.store.deleteMessage(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}
