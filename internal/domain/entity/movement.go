package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the closed set of warehouse movement document types.
type MovementType string

// Polish warehouse document codes.
const (
	MovementPZ  MovementType = "PZ"  // przyjęcie zewnętrzne, external receipt
	MovementPW  MovementType = "PW"  // przyjęcie wewnętrzne, internal receipt
	MovementWZ  MovementType = "WZ"  // wydanie zewnętrzne, external issue
	MovementRW  MovementType = "RW"  // rozchód wewnętrzny, internal issue
	MovementMM  MovementType = "MM"  // przesunięcie międzymagazynowe, transfer (outbound leg)
	MovementZW  MovementType = "ZW"  // zwrot wewnętrzny, internal return
	MovementZK  MovementType = "ZK"  // zwrot konsygnacyjny, consignment return
	MovementINW MovementType = "INW" // inwentaryzacja, inventory count (absolute override)
)

// MovementClass groups movement types by their effect on on-hand quantity.
type MovementClass int

const (
	ClassUnknown   MovementClass = iota
	ClassReceipt                 // quantity increases
	ClassIssue                   // quantity decreases, must not exceed on hand
	ClassInventory               // quantity set to absolute value
)

// Class returns the quantity effect of the movement type. Exhaustive over the
// closed enum; anything else is ClassUnknown and must be rejected upfront.
func (t MovementType) Class() MovementClass {
	switch t {
	case MovementPZ, MovementPW, MovementZW, MovementZK:
		return ClassReceipt
	case MovementWZ, MovementRW, MovementMM:
		return ClassIssue
	case MovementINW:
		return ClassInventory
	default:
		return ClassUnknown
	}
}

// Movement statuses.
const (
	MovementStatusCompleted = "completed"
	MovementStatusPending   = "pending" // recorded on purchase confirm, applied on receive
)

// Movement is an immutable audit record of a single stock-affecting
// transaction against one catalog item.
type Movement struct {
	ID          string
	ItemID      string
	Type        MovementType
	Quantity    decimal.Decimal
	Supplier    string
	Document    string
	Description string
	Comment     string
	Status      string
	OrderID     string // optional originating order
	CreatedBy   string
	CreatedAt   time.Time
}

// Attachment is file metadata linked to a movement.
type Attachment struct {
	ID         string
	MovementID string
	FileName   string
	FilePath   string
	MimeType   string
	Size       int64
	CreatedAt  time.Time
}
