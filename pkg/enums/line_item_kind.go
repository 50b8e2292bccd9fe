package enums

import (
	"fmt"
	"strings"
)

// LineItemKind classifies an additional-module line into its charge bucket.
type LineItemKind string

const (
	LineItemKindOneTime   LineItemKind = "one_time"
	LineItemKindRecurring LineItemKind = "recurring"
)

var validLineItemKinds = []LineItemKind{
	LineItemKindOneTime,
	LineItemKindRecurring,
}

// String implements fmt.Stringer.
func (l LineItemKind) String() string {
	return string(l)
}

// IsValid reports whether the value is known.
func (l LineItemKind) IsValid() bool {
	for _, candidate := range validLineItemKinds {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLineItemKind converts raw input into a LineItemKind.
func ParseLineItemKind(value string) (LineItemKind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validLineItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item kind %q", value)
}
