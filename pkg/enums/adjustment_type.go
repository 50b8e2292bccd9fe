package enums

import (
	"fmt"
	"strings"
)

// AdjustmentType categorizes the financing adjustment applied to the
// recurring charge bucket.
type AdjustmentType string

const (
	AdjustmentTypeDiscount AdjustmentType = "discount"
	AdjustmentTypeRecharge AdjustmentType = "recharge"
	AdjustmentTypeNone     AdjustmentType = "none"
)

var validAdjustmentTypes = []AdjustmentType{
	AdjustmentTypeDiscount,
	AdjustmentTypeRecharge,
	AdjustmentTypeNone,
}

// String implements fmt.Stringer.
func (a AdjustmentType) String() string {
	return string(a)
}

// IsValid reports whether the value is known.
func (a AdjustmentType) IsValid() bool {
	for _, candidate := range validAdjustmentTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdjustmentType converts raw input into an AdjustmentType.
func ParseAdjustmentType(value string) (AdjustmentType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validAdjustmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment type %q", value)
}
