package event

import "time"

const PasscodeVerifiedDestination string = "passcode_verified"

// PasscodeVerifiedMessage announces a successful verification so interested
// modules can react, for example unlocking a pending email change.
type PasscodeVerifiedMessage struct {
	EventID    string    `json:"event_id"`
	OwnerID    string    `json:"owner_id"`
	Email      string    `json:"email"`
	Purpose    int16     `json:"purpose"`
	VerifiedAt time.Time `json:"verified_at"`
}
