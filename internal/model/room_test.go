package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomListRowText(t *testing.T) {
	room := Room{
		Number:     "RM1",
		Type:       RoomTypeSingle,
		Accessible: false,
		Price:      "100",
		Features:   []Feature{FeatureWiFi, FeatureSafe},
	}

	assert.Equal(t, "RM1\n\rSingle\n\rfalse\n\r100\n\rWiFi, Safe", room.ListRowText())
}

func TestRoomFeaturesFallback(t *testing.T) {
	room := Room{Number: "RM1", Type: RoomTypeSingle, Price: "100"}

	assert.Equal(t, "No features added to the room", room.FeaturesText())
	assert.Contains(t, room.ListRowText(), "No features added to the room")
}

func TestRoomFeaturesJoin(t *testing.T) {
	room := Room{Features: []Feature{FeatureTV}}
	assert.Equal(t, "TV", room.FeaturesText())

	room.Features = []Feature{FeatureWiFi, FeatureRefreshments, FeatureViews}
	assert.Equal(t, "WiFi, Refreshments, Views", room.FeaturesText())
}

func TestRoomValidate(t *testing.T) {
	valid := Room{
		Number:   "101",
		Type:     RoomTypeFamily,
		Price:    "500",
		Features: []Feature{FeatureWiFi, FeatureSafe},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		room Room
	}{
		{"missing number", Room{Type: RoomTypeSingle, Price: "100"}},
		{"unknown type", Room{Number: "101", Type: "Penthouse", Price: "100"}},
		{"missing price", Room{Number: "101", Type: RoomTypeSingle}},
		{"unknown feature", Room{Number: "101", Type: RoomTypeSingle, Price: "1", Features: []Feature{"Sauna"}}},
		{"duplicate feature", Room{Number: "101", Type: RoomTypeSingle, Price: "1", Features: []Feature{FeatureTV, FeatureTV}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.room.Validate())
		})
	}
}
