package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testMessage = ContactMessage{
	Name:    "John Abcd",
	Email:   "test@te.com",
	Phone:   "070000001000",
	Subject: "Subject Entered",
	Message: "Contact for to check rooms availability in Summer Vacations.",
}

func TestContactMessageDetailText(t *testing.T) {
	// Field-for-field concatenation with no separators, ending in the Close
	// button label. Exact-match contract with the platform's dialog.
	want := "From: John Abcd" +
		"Phone: 070000001000" +
		"Email: test@te.com" +
		"Subject Entered" +
		"Contact for to check rooms availability in Summer Vacations." +
		"Close"
	assert.Equal(t, want, testMessage.DetailText())
}

func TestContactMessageConfirmationText(t *testing.T) {
	want := "Thanks for getting in touch John Abcd!" +
		"We'll get back to you about" +
		"Subject Entered" +
		"as soon as possible."
	assert.Equal(t, want, testMessage.ConfirmationText())
}

func TestContactMessageValidate(t *testing.T) {
	assert.NoError(t, testMessage.Validate())

	incomplete := testMessage
	incomplete.Phone = ""
	assert.Error(t, incomplete.Validate())
}
