package entity

// DeliveryStatus tracks one email through the delivery log.
type DeliveryStatus int16

const (
	DeliveryStatusUnknown DeliveryStatus = 0
	DeliveryStatusQueued  DeliveryStatus = 1
	DeliveryStatusSent    DeliveryStatus = 2
	DeliveryStatusFailed  DeliveryStatus = 3
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusQueued:
		return "queued"
	case DeliveryStatusSent:
		return "sent"
	case DeliveryStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Purpose labels why the passcode behind a delivery was issued. Values mirror
// the purpose field carried on passcode events.
type Purpose int16

const (
	PurposeUnknown            Purpose = 0
	PurposeSignupVerification Purpose = 1
	PurposeEmailChange        Purpose = 2
	PurposePasswordReset      Purpose = 3
)

func (p Purpose) String() string {
	switch p {
	case PurposeSignupVerification:
		return "signup_verification"
	case PurposeEmailChange:
		return "email_change"
	case PurposePasswordReset:
		return "password_reset"
	default:
		return "unknown"
	}
}
