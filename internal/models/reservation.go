package models

import (
	"github.com/uptrace/bun"
)

const (
	ReservationConfirmed = "Confirmed"
	ReservationPending   = "Pending"
	ReservationCancelled = "Cancelled"

	PaymentPaid     = "Paid"
	PaymentUnpaid   = "Unpaid"
	PaymentRefunded = "Refunded"
)

type ReservationRecord struct {
	bun.BaseModel `bun:"table:reservations"`

	// Seq keeps the listing in insertion order when no sort is requested.
	Seq           int    `bun:"seq,notnull" json:"-"`
	ID            string `bun:"reservation_id,pk" json:"reservation_id"`
	User          string `bun:"user_name,notnull" json:"user"`
	Resort        string `bun:"resort,notnull" json:"resort"`
	TimeSlot      string `bun:"time_slot" json:"time_slot"`
	Status        string `bun:"status,notnull" json:"status"`
	PaymentStatus string `bun:"payment_status,notnull" json:"payment_status"`
}
