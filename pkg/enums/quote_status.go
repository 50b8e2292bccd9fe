package enums

import (
	"fmt"
	"strings"
)

// QuoteStatus tracks the lifecycle state of a cotización.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "borrador"
	QuoteStatusSent     QuoteStatus = "enviada"
	QuoteStatusAccepted QuoteStatus = "aceptada"
	QuoteStatusRejected QuoteStatus = "rechazada"
	QuoteStatusExpired  QuoteStatus = "vencida"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status allows no further transitions.
func (q QuoteStatus) IsTerminal() bool {
	switch q {
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
