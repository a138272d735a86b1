// Package fixture holds the static room records consumed by the creation and
// verification scenarios.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"booker-e2e/internal/model"
)

//go:embed rooms.json
var roomsJSON []byte

// Rooms returns the fixture rooms in their defined order. Every record is
// validated so a bad fixture fails the run before any scenario starts.
func Rooms() ([]model.Room, error) {
	var rooms []model.Room
	if err := json.Unmarshal(roomsJSON, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms fixture: %w", err)
	}
	for _, r := range rooms {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid fixture room %q: %w", r.Number, err)
		}
	}
	return rooms, nil
}
