package enums

import (
	"fmt"
	"strings"
)

// LeadStatus tracks a lead through the sales funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "nuevo"
	LeadStatusContacted LeadStatus = "contactado"
	LeadStatusQualified LeadStatus = "calificado"
	LeadStatusWon       LeadStatus = "ganado"
	LeadStatusLost      LeadStatus = "perdido"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusWon,
	LeadStatusLost,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadStatus.
func (l LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
