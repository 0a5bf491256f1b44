package domain

// User is a registered account holder. APIKey is the secret it authenticates with.
type User struct {
	ID     string `json:"id"`      // Opaque unique identifier
	APIKey string `json:"api_key"` // Unique secret token
}
