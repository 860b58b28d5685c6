package entity

import "time"

// Passcode is one issued code at rest. Only the HMAC of the code is stored;
// the plaintext lives exactly as long as the issuance flow that created it.
type Passcode struct {
	ID        int64
	OwnerID   string
	Email     string
	CodeHash  string
	Purpose   Purpose
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Expired reports whether the code's validity window has passed at the
// given instant. The boundary instant itself still verifies.
func (p Passcode) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
