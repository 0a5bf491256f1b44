package domain

import "time"

// Transaction is one completed transfer. It is never mutated after it is recorded.
type Transaction struct {
	ID          string    `json:"id"`           // Primary key
	FromAddress string    `json:"from_address"` // Sender wallet
	ToAddress   string    `json:"to_address"`   // Receiver wallet
	AmountSat   int64     `json:"amount_sat"`   // Amount debited from the sender
	FeeSat      int64     `json:"fee_sat"`      // Part of AmountSat kept by the platform
	CreatedAt   time.Time `json:"created_at"`   // UTC, ordering key for history
}

// CreditedSat is the amount the receiver actually gets.
func (t Transaction) CreditedSat() int64 {
	return t.AmountSat - t.FeeSat
}

// Touches reports whether address is either side of the transaction.
func (t Transaction) Touches(address string) bool {
	return t.FromAddress == address || t.ToAddress == address
}
