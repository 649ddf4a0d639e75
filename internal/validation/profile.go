// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"skillswap/internal/models"
)

const (
	maxSkills       = 20
	maxSkillLen     = 60
	maxNameLen      = 80
	maxLocationLen  = 120
	maxRatingComLen = 1000
)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	// Check minimum length
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	// Check for uppercase letter
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	// Check for lowercase letter
	hasLower := false
	for _, r := range password {
		if unicode.IsLower(r) {
			hasLower = true
			break
		}
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	// Check for digit
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	// Simple email validation - regex approach
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must not exceed %d characters", maxNameLen)
	}
	return nil
}

// ValidateLocation checks an optional location string.
func ValidateLocation(location string) error {
	if len(location) > maxLocationLen {
		return fmt.Errorf("location must not exceed %d characters", maxLocationLen)
	}
	return nil
}

// ValidateSkillList checks a skill list and returns it with entries trimmed
// and blanks dropped.
func ValidateSkillList(skills []string) ([]string, error) {
	if len(skills) > maxSkills {
		return nil, fmt.Errorf("at most %d skills are allowed", maxSkills)
	}
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) > maxSkillLen {
			return nil, fmt.Errorf("skill names must not exceed %d characters", maxSkillLen)
		}
		cleaned = append(cleaned, s)
	}
	return cleaned, nil
}

// ValidateProfileStatus checks a profile visibility value.
func ValidateProfileStatus(status models.ProfileStatus) error {
	switch status {
	case models.ProfileStatusPublic, models.ProfileStatusPrivate:
		return nil
	}
	return fmt.Errorf("profile status must be 'public' or 'private'")
}

// ValidateSwapMessage checks the length bounds of a swap request message.
// Bounds apply to characters, not bytes, so multi-byte text counts fairly.
func ValidateSwapMessage(message string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(message))
	if n < models.SwapMessageMinLen {
		return fmt.Errorf("message must be at least %d characters", models.SwapMessageMinLen)
	}
	if n > models.SwapMessageMaxLen {
		return fmt.Errorf("message must not exceed %d characters", models.SwapMessageMaxLen)
	}
	return nil
}

// ValidateRating checks a feedback rating value.
func ValidateRating(rating int) error {
	if rating < models.RatingMin || rating > models.RatingMax {
		return fmt.Errorf("rating must be between %d and %d", models.RatingMin, models.RatingMax)
	}
	return nil
}

// ValidateFeedbackComment checks a feedback comment.
func ValidateFeedbackComment(comment string) error {
	if len(comment) > maxRatingComLen {
		return fmt.Errorf("comment must not exceed %d characters", maxRatingComLen)
	}
	return nil
}
