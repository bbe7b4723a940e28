package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bloodbank-backend/internal/domain"
)

// DateLayout is the yyyy-mm-dd form used by forms, query strings and SQL.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "-")
	if len(parts) != 3 {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: "invalid date format, expected yyyy-mm-dd"}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: fmt.Sprintf("invalid year: %v", err)}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: fmt.Sprintf("invalid month: %v", err)}
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: fmt.Sprintf("invalid day: %v", err)}
	}

	if month < 1 || month > 12 {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: "month must be between 1 and 12"}
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: fmt.Sprintf("day must be between 1 and %d", DaysInMonth(year, month))}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// StartOfDay truncates t to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Age returns completed years between dateOfBirth and today using calendar
// subtraction. A birthday later in the year than today does not count yet.
func Age(dateOfBirth, today time.Time) (int, error) {
	dob, now := StartOfDay(dateOfBirth), StartOfDay(today)
	if dob.After(now) {
		return 0, &domain.ValidationError{Field: "date_of_birth", Message: "is after today"}
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, nil
}

// NextEligibleDonation returns the first day a donor may give whole blood
// again after donating on lastDonation.
func NextEligibleDonation(lastDonation time.Time) time.Time {
	return StartOfDay(lastDonation).AddDate(0, 0, domain.MinDonationIntervalDays)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
