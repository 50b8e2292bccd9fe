package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// LooseDecimal decodes legacy numeric JSON fields that may arrive as a
// number, a numeric string, null, or garbage. Anything unparseable coerces
// to zero; decoding never fails.
type LooseDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		l.Decimal = decimal.Zero
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			l.Decimal = decimal.Zero
			return nil
		}
		parsed, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			l.Decimal = decimal.Zero
			return nil
		}
		l.Decimal = parsed
		return nil
	}

	parsed, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		l.Decimal = decimal.Zero
		return nil
	}
	l.Decimal = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l LooseDecimal) MarshalJSON() ([]byte, error) {
	return l.Decimal.MarshalJSON()
}

// LooseInt decodes legacy integer fields with the same total semantics as
// LooseDecimal. The Set flag distinguishes "absent or garbage" from an
// explicit value, which matters for installment-count precedence.
type LooseInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseInt) UnmarshalJSON(data []byte) error {
	var parsed LooseDecimal
	_ = parsed.UnmarshalJSON(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if parsed.Decimal.IsZero() && !isZeroLiteral(trimmed) {
		return nil
	}

	l.Value = int(parsed.Decimal.IntPart())
	l.Set = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l LooseInt) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// Ptr returns the value as an optional int, nil when unset.
func (l LooseInt) Ptr() *int {
	if !l.Set {
		return nil
	}
	v := l.Value
	return &v
}

func isZeroLiteral(data []byte) bool {
	s := strings.Trim(string(data), `" `)
	parsed, err := decimal.NewFromString(s)
	return err == nil && parsed.IsZero()
}
