package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayDateLayout is how dates are typed in and shown to operators.
	DisplayDateLayout = "02/01/2006"
	// ISODateLayout is how dates are stored in the reservation workspace.
	ISODateLayout = "2006-01-02"
)

// ConvertToISODate turns an operator-typed dd/MM/yyyy date into yyyy-MM-dd.
func ConvertToISODate(dateStr string) (string, error) {
	parsed, err := time.Parse(DisplayDateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s", dateStr)
	}
	return parsed.Format(ISODateLayout), nil
}

// FormatDisplayDate renders an ISO date (or date-time) as dd/MM/yyyy. Values
// that do not parse are returned unchanged.
func FormatDisplayDate(iso string) string {
	if len(iso) >= len(ISODateLayout) {
		if t, err := time.Parse(ISODateLayout, iso[:len(ISODateLayout)]); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return iso
}
