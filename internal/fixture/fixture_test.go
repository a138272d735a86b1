package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-e2e/internal/model"
)

func TestRooms(t *testing.T) {
	rooms, err := Rooms()
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	// Fixture order is scenario order.
	assert.Equal(t, "101", rooms[0].Number)
	assert.Equal(t, "102", rooms[1].Number)
	assert.Equal(t, "103", rooms[2].Number)

	assert.Equal(t, model.RoomTypeSingle, rooms[0].Type)
	assert.True(t, rooms[0].Accessible)
	assert.Equal(t, []model.Feature{model.FeatureTV, model.FeatureWiFi, model.FeatureSafe}, rooms[0].Features)

	assert.Empty(t, rooms[1].Features)
	assert.Equal(t, model.NoFeaturesText, rooms[1].FeaturesText())
}

func TestRoomsValid(t *testing.T) {
	rooms, err := Rooms()
	require.NoError(t, err)

	for _, r := range rooms {
		assert.NoError(t, r.Validate(), r.Number)
	}
}
