package controllers

import (
	"net/mail"
	"strings"
)

// Shared validation pieces for the two public forms.

// Shown for honeypot hits and any other rejected submission; automated
// submitters must not be able to tell the difference.
const errInvalidSubmission = "Invalid submission."

const errConsentRequired = "Consent to data processing is required."

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func isValidEmail(v string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(v))
	return err == nil && addr.Address == strings.TrimSpace(v)
}
