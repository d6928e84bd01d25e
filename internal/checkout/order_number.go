package checkout

import (
	"strings"

	"github.com/google/uuid"
)

// NewOrderNumber produces a display reference like ORD-3FA85F64. The database
// id stays the real key; this is what shows up on receipts and in support
// conversations.
func NewOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(hex[:8])
}
