package scenario

import (
	"context"
	"errors"
	"fmt"

	"booker-e2e/internal/apiclient"
	"booker-e2e/internal/model"
	"booker-e2e/internal/pages"
	"booker-e2e/internal/verify"
)

// SuiteConfig parameterizes the built-in scenario groups.
type SuiteConfig struct {
	Username string
	Password string
	Rooms    []model.Room
}

var contactMessage = model.ContactMessage{
	Name:    "John Abcd",
	Email:   "test@te.com",
	Phone:   "070000001000",
	Subject: "Subject Entered",
	Message: "Contact for to check rooms availability in Summer Vacations.",
}

var apiRoom = model.Room{
	Number:      "ABC103",
	Type:        model.RoomTypeSingle,
	Accessible:  false,
	Description: "Please enter a description for this room",
	Image:       "https://www.mwtestconsultancy.co.uk/img/room1.jpg",
	Price:       "400",
	Features:    nil,
}

// BuiltinGroups assembles the standard suite: admin access checks, the room
// lifecycle per fixture room, the contact-message round trip, and the booking
// API cross-checks. Groups that create or delete shared entities are serial;
// pure reads run in parallel.
func BuiltinGroups(cfg SuiteConfig) []Group {
	return []Group{
		adminAccessGroup(cfg),
		roomLifecycleGroup(cfg),
		contactMessageGroup(cfg),
		bookingAPIGroup(cfg),
	}
}

func login(s *Session, cfg SuiteConfig) (*pages.RoomsPage, error) {
	return pages.NewLoginPage(s.Browser).Login(cfg.Username, cfg.Password)
}

func adminAccessGroup(cfg SuiteConfig) Group {
	adminPaths := []struct {
		name string
		path string
	}{
		{"rooms", "/#/admin"},
		{"report", "/#/admin/report"},
		{"branding", "/#/admin/branding"},
		{"messages", "/#/admin/messages"},
	}

	var scenarios []Scenario
	for _, p := range adminPaths {
		p := p
		scenarios = append(scenarios, Scenario{
			Name: fmt.Sprintf("%s page requires login", p.name),
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Browser.Navigate(p.path); err != nil {
					return err
				}
				if !s.Browser.Visible("h1, h2, h3, p", "Log into your account") {
					return &verify.Failure{
						Page:     p.name + " page",
						Field:    "login prompt",
						Expected: "Log into your account",
						Actual:   "not visible",
					}
				}
				return nil
			},
		})
	}

	scenarios = append(scenarios, Scenario{
		Name: "rooms page header row after login",
		Run: func(ctx context.Context, s *Session) error {
			rooms, err := login(s, cfg)
			if err != nil {
				return err
			}
			if err := rooms.VerifyLoggedIn(); err != nil {
				return err
			}
			return rooms.VerifyHeaderRow()
		},
	})

	return Group{Name: "admin-access", Serial: false, Scenarios: scenarios}
}

func roomLifecycleGroup(cfg SuiteConfig) Group {
	var scenarios []Scenario
	for _, room := range cfg.Rooms {
		room := room
		scenarios = append(scenarios, Scenario{
			Name:     fmt.Sprintf("room %s lifecycle", room.Number),
			Mutating: true,
			Run: func(ctx context.Context, s *Session) error {
				roomsPage, err := login(s, cfg)
				if err != nil {
					return err
				}
				if err := roomsPage.CreateRoom(room); err != nil {
					return err
				}

				// Public-site checks are soft: every mismatching card
				// attribute is reported together at scenario end.
				home := pages.NewHomePage(s.Browser)
				if err := home.Goto(); err != nil {
					return err
				}
				home.AssertRoom(s.Soft, room)

				loginPage := pages.NewLoginPage(s.Browser)
				if err := loginPage.Goto(); err != nil {
					return err
				}
				roomsPage = pages.NewRoomsPage(s.Browser)
				detail, err := roomsPage.OpenRoomDetail(room)
				if err != nil {
					return err
				}

				updated := room
				updated.Description = "updated description"
				updated.Image = "https://someimage.image"
				updated.Price = "500"
				updated.Features = []model.Feature{model.FeatureWiFi, model.FeatureSafe}
				updated.Type = model.RoomTypeFamily
				updated.Accessible = true
				if err := detail.UpdateRoom(room, updated); err != nil {
					return err
				}

				if err := loginPage.Goto(); err != nil {
					return err
				}
				roomsPage = pages.NewRoomsPage(s.Browser)
				return roomsPage.DeleteRoom(updated)
			},
		})
	}
	return Group{Name: "room-lifecycle", Serial: true, Scenarios: scenarios}
}

func contactMessageGroup(cfg SuiteConfig) Group {
	return Group{
		Name:   "contact-message",
		Serial: true,
		Scenarios: []Scenario{
			{
				Name:     "contact form submission",
				Mutating: true,
				Run: func(ctx context.Context, s *Session) error {
					home := pages.NewHomePage(s.Browser)
					if err := home.Goto(); err != nil {
						return err
					}
					return home.SubmitContactForm(contactMessage)
				},
			},
			{
				Name:     "message round trip in admin inbox",
				Mutating: true,
				Run: func(ctx context.Context, s *Session) error {
					roomsPage, err := login(s, cfg)
					if err != nil {
						return err
					}
					inbox, err := roomsPage.OpenInbox()
					if err != nil {
						return err
					}
					if err := inbox.OpenUnreadMessage(contactMessage); err != nil {
						return err
					}
					return inbox.DeleteMessage(contactMessage)
				},
			},
		},
	}
}

func bookingAPIGroup(cfg SuiteConfig) Group {
	booking := model.Booking{
		RoomNumber:  apiRoom.Number,
		FirstName:   "FName",
		LastName:    "lastname",
		Email:       "test@test.com",
		Phone:       "3983288237868",
		Price:       "4000",
		DepositPaid: model.Bool(false),
		Dates:       model.DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"},
	}
	overlapping := booking
	overlapping.FirstName = "Second"
	overlapping.Dates = model.DateRange{CheckIn: "2025-01-13", CheckOut: "2025-01-16"}

	return Group{
		Name:   "booking-api",
		Serial: true,
		Scenarios: []Scenario{
			{
				Name:     "booking created via api shows on room detail",
				Mutating: true,
				Run: func(ctx context.Context, s *Session) error {
					roomsPage, err := login(s, cfg)
					if err != nil {
						return err
					}
					if err := roomsPage.CreateRoom(apiRoom); err != nil {
						return err
					}

					result, err := s.API.BookRoomByNumber(ctx, booking)
					if err != nil {
						return fmt.Errorf("booking should have been created: %w", err)
					}
					s.Log.Info("booking created via api", "status", result.Status)

					detail, err := roomsPage.OpenRoomDetail(apiRoom)
					if err != nil {
						return err
					}
					return detail.VerifyBookingData(booking)
				},
			},
			{
				Name:     "overlapping booking rejected with conflict",
				Mutating: true,
				Run: func(ctx context.Context, s *Session) error {
					result, err := s.API.BookRoomByNumber(ctx, overlapping)
					if !errors.Is(err, apiclient.ErrConflict) {
						status := 0
						if result != nil {
							status = result.Status
						}
						return fmt.Errorf("expected conflict for overlapping dates, got status %d, err %v", status, err)
					}

					roomsPage, err := login(s, cfg)
					if err != nil {
						return err
					}
					return roomsPage.DeleteRoom(apiRoom)
				},
			},
		},
	}
}
