package pages

import (
	"strconv"
	"strings"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// FormatID renders a row id, leaving missing ids blank.
func FormatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// SystemLabel renders a surfactant system heading such as
// "Mild Amphoteric Blend · tags: mild, sulfate-free".
func SystemLabel(name string, tags []string) string {
	if len(tags) == 0 {
		return name
	}
	return name + " · tags: " + strings.Join(tags, ", ")
}

// ServiceAccountLabel shows the service account or a placeholder.
func ServiceAccountLabel(email string) string {
	if strings.TrimSpace(email) == "" {
		return "(no email)"
	}
	return email
}
