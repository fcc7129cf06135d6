package enums

import "fmt"

// InventoryReason explains why a book's stock moved.
type InventoryReason string

const (
	InventoryReasonInitial    InventoryReason = "initial"
	InventoryReasonLoaned     InventoryReason = "loaned"
	InventoryReasonReturned   InventoryReason = "returned"
	InventoryReasonAdjustment InventoryReason = "adjustment"
)

var validInventoryReasons = []InventoryReason{
	InventoryReasonInitial,
	InventoryReasonLoaned,
	InventoryReasonReturned,
	InventoryReasonAdjustment,
}

// String implements fmt.Stringer.
func (r InventoryReason) String() string {
	return string(r)
}

// IsValid reports whether the value is a known InventoryReason.
func (r InventoryReason) IsValid() bool {
	for _, candidate := range validInventoryReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseInventoryReason converts raw input into an InventoryReason.
func ParseInventoryReason(value string) (InventoryReason, error) {
	for _, candidate := range validInventoryReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory reason %q", value)
}
