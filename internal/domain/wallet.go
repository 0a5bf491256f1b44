package domain

// SatoshisPerBTC is the number of satoshis in one whole coin.
const SatoshisPerBTC int64 = 100_000_000

// Wallet Model
type Wallet struct {
	Address    string `json:"address"`     // Primary key
	UserID     string `json:"user_id"`     // Owner
	BalanceSat int64  `json:"balance_sat"` // Never negative
}

// Debit returns a copy of the wallet with amount removed from its balance.
func (w Wallet) Debit(amount int64) Wallet {
	w.BalanceSat -= amount
	return w
}

// Credit returns a copy of the wallet with amount added to its balance.
func (w Wallet) Credit(amount int64) Wallet {
	w.BalanceSat += amount
	return w
}

// OwnedBy reports whether userID owns the wallet.
func (w Wallet) OwnedBy(userID string) bool {
	return w.UserID == userID
}
