package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// QuoteLineItem is an additional-module charge already resolved into its
// bucket. Classification happens once at ingestion; the calculator never
// re-infers it from raw monetary fields.
type QuoteLineItem struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Kind        enums.LineItemKind `json:"kind"`
	Amount      decimal.Decimal    `json:"amount"`
}

// QuoteLineItems is an ordered slice marshaled as JSONB.
type QuoteLineItems []QuoteLineItem

// Value serializes the line items to JSON.
func (q QuoteLineItems) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

// Scan decodes JSONB into the line item slice.
func (q *QuoteLineItems) Scan(value interface{}) error {
	if value == nil {
		*q = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded QuoteLineItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*q = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
