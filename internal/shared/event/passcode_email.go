package event

import "time"

const PasscodeEmailDestination string = "passcode_email"
const PasscodeEmailConsumerMailer string = "passcode_email_mailer"

// PasscodeEmailMessage asks the mailer to deliver an issued passcode. The
// rendered body rides only on the event, never in a database row.
type PasscodeEmailMessage struct {
	EventID  string    `json:"event_id"`
	OwnerID  string    `json:"owner_id"`
	Email    string    `json:"email"`
	Purpose  int16     `json:"purpose"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	IssuedAt time.Time `json:"issued_at"`
}
