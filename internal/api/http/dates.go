package http

import (
	"errors"
	"strings"
	"time"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/utils"
)

// parseOptionalDate reads a yyyy-mm-dd form value. Blank means absent.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, &domain.ValidationError{Field: field, Message: verr.Message}
		}
		return nil, err
	}
	return &t, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := parseOptionalDate(field, value)
	if err != nil || t == nil {
		return time.Time{}, err
	}
	return *t, nil
}
