package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRowText(t *testing.T) {
	b := Booking{
		RoomNumber:  "ABC103",
		FirstName:   "FName",
		LastName:    "lastname",
		Price:       "4000",
		DepositPaid: Bool(false),
		Dates:       DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"},
	}

	assert.Equal(t, "FNamelastname4000false2025-01-062025-01-16", b.RowText())
}

func TestBookingRowTextNoDeposit(t *testing.T) {
	b := Booking{
		FirstName: "A",
		LastName:  "B",
		Price:     "10",
		Dates:     DateRange{CheckIn: "2025-02-01", CheckOut: "2025-02-03"},
	}

	// An unset deposit flag contributes nothing to the rendered row.
	assert.Equal(t, "AB102025-02-012025-02-03", b.RowText())
}

func TestDateRangeValidate(t *testing.T) {
	require.NoError(t, DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"}.Validate())

	assert.Error(t, DateRange{CheckIn: "2025-01-16", CheckOut: "2025-01-06"}.Validate())
	assert.Error(t, DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-06"}.Validate())
	assert.Error(t, DateRange{CheckIn: "06/01/2025", CheckOut: "2025-01-16"}.Validate())
	assert.Error(t, DateRange{CheckIn: "2025-01-06", CheckOut: ""}.Validate())
}

func TestDateRangeOverlaps(t *testing.T) {
	base := DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"inside", DateRange{CheckIn: "2025-01-13", CheckOut: "2025-01-16"}, true},
		{"identical", DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"}, true},
		{"straddles start", DateRange{CheckIn: "2025-01-01", CheckOut: "2025-01-07"}, true},
		{"before", DateRange{CheckIn: "2024-12-01", CheckOut: "2024-12-10"}, false},
		{"after", DateRange{CheckIn: "2025-02-01", CheckOut: "2025-02-10"}, false},
		{"back to back", DateRange{CheckIn: "2025-01-16", CheckOut: "2025-01-20"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestBookingValidate(t *testing.T) {
	valid := Booking{
		RoomNumber: "101",
		FirstName:  "F",
		LastName:   "L",
		Dates:      DateRange{CheckIn: "2025-01-06", CheckOut: "2025-01-16"},
	}
	require.NoError(t, valid.Validate())

	missingRoom := valid
	missingRoom.RoomNumber = ""
	assert.Error(t, missingRoom.Validate())

	missingName := valid
	missingName.FirstName = ""
	assert.Error(t, missingName.Validate())
}
