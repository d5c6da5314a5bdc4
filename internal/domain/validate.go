package domain

import (
	"regexp"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks the slug shape: lowercase words joined by hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return NewValidationError("slug", "This field is required.")
	}
	if !slugPattern.MatchString(slug) {
		return NewValidationError("slug", "Enter a valid slug consisting of lowercase letters, numbers and hyphens.")
	}
	return nil
}

// ValidateRequired checks that a required field carries a value.
func ValidateRequired(field, value string) error {
	if value == "" {
		return NewValidationError(field, "This field is required.")
	}
	return nil
}

// ValidateEventDate rejects dates before today and, for today's date, times
// of day that have already passed. now supplies the reference clock.
func ValidateEventDate(date, startTime string, now time.Time) error {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return NewValidationError("date", "Enter a valid date.")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return NewValidationError("date", "Date should not be before today's date.")
	}
	if startTime == "" {
		return nil
	}
	t, err := time.ParseInLocation(TimeLayout, startTime, now.Location())
	if err != nil {
		return NewValidationError("time", "Enter a valid time.")
	}
	if d.Equal(today) {
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if at.Before(now) {
			return NewValidationError("time", "Time should not be a time that has already passed.")
		}
	}
	return nil
}
