package usecase

import (
	"regexp"
	"strings"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCaptureLeadInput checks the raw intake payload. An absent tag is
// fine (it defaults later); an explicitly invalid tag is rejected.
func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errs []ValidationError

	email := strings.TrimSpace(input.Email)
	if email == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if input.Tag != "" && !entity.IsValidTag(input.Tag) {
		errs = append(errs, ValidationError{"tag", "is not a recognized tag"})
	}

	return errs
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
