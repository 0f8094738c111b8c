package domain

import "strings"

// ReorderStatus classifies how urgently a supply item needs replenishment
type ReorderStatus string

const (
	ReorderCritical ReorderStatus = "Critical"
	ReorderWarning  ReorderStatus = "Warning"
	ReorderGood     ReorderStatus = "Good"
)

var reorderPriority = map[ReorderStatus]int{
	ReorderCritical: 0,
	ReorderWarning:  1,
	ReorderGood:     2,
}

// Priority returns the presentation rank of the status; lower is more urgent.
func (s ReorderStatus) Priority() int {
	if p, ok := reorderPriority[s]; ok {
		return p
	}

	return len(reorderPriority)
}

// AlertStatus classifies a low-stock alert
type AlertStatus string

const (
	AlertCritical AlertStatus = "Critical"
	AlertWarning  AlertStatus = "Warning"
	AlertLow      AlertStatus = "Low"
)

// ExpiryPriority classifies how soon a supply expires
type ExpiryPriority string

const (
	ExpiryHigh   ExpiryPriority = "High"
	ExpiryMedium ExpiryPriority = "Medium"
	ExpiryLow    ExpiryPriority = "Low"
)

// RequestType is the kind of restock request
type RequestType string

const (
	RequestTypeTransfer RequestType = "Transfer from Inventory"
	RequestTypePurchase RequestType = "Purchase from Supplier"
)

var requestTypes = map[string]RequestType{
	"transfer from inventory": RequestTypeTransfer,
	"purchase from supplier":  RequestTypePurchase,
}

// ParseRequestType returns the request type for a label (case-insensitive).
func ParseRequestType(label string) (RequestType, bool) {
	rt, ok := requestTypes[strings.ToLower(strings.TrimSpace(label))]

	return rt, ok
}
