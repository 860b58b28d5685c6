// Package mail carries the email delivery contract.
//
// The mailer module depends on the Mail interface and the Message payload
// only; the SMTP implementation here is one provider behind it. Passcode
// bodies travel through this package but are never logged or persisted by
// it.
package mail
