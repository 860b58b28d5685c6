package inbound

import "time"

type IssueRequest struct {
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// IssueResponse deliberately carries no data. The passcode travels by email
// only, so the HTTP reply is a bare acknowledgement.
type IssueResponse struct{}

func (IssueResponse) Message() string {
	return "If the address is reachable, a passcode is on its way."
}

type VerifyRequest struct {
	OwnerID string `json:"owner_id"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

type VerifyResponse struct {
	Purpose    string    `json:"purpose"`
	VerifiedAt time.Time `json:"verified_at"`
}

func (VerifyResponse) Message() string {
	return "Passcode accepted."
}
