package model

import "fmt"

// ContactMessage is a public contact-form submission. All fields are
// required. A message is created unread, flips to read when opened in the
// admin inbox, and disappears on deletion.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"description"`
}

// Validate checks that every field is present.
func (m ContactMessage) Validate() error {
	if m.Name == "" || m.Email == "" || m.Phone == "" || m.Subject == "" || m.Message == "" {
		return fmt.Errorf("contact message requires name, email, phone, subject and message")
	}
	return nil
}

// DetailText is the full text of the opened message dialog. The platform
// renders the fields back to back with no separators; the format is an
// external contract, including the trailing Close button label.
func (m ContactMessage) DetailText() string {
	return "From: " + m.Name +
		"Phone: " + m.Phone +
		"Email: " + m.Email +
		m.Subject +
		m.Message +
		"Close"
}

// ConfirmationText is the acknowledgement shown on the public site after a
// successful submission. The missing space after "about" is in the rendered
// output; do not correct it here.
func (m ContactMessage) ConfirmationText() string {
	return fmt.Sprintf("Thanks for getting in touch %s!We'll get back to you about%sas soon as possible.", m.Name, m.Subject)
}
