package entity

// Purpose narrows where an issued passcode may be redeemed. A code issued
// for one purpose never verifies under another.
type Purpose int16

const (
	// PurposeUnknown is an unrecognized or unset purpose.
	PurposeUnknown Purpose = 0

	// PurposeSignupVerification proves ownership of the address given at
	// signup.
	PurposeSignupVerification Purpose = 1

	// PurposeEmailChange confirms a new address before it replaces the
	// current one.
	PurposeEmailChange Purpose = 2

	// PurposePasswordReset authorizes a password reset for the account.
	PurposePasswordReset Purpose = 3
)

// PurposeFromString parses the wire form of a purpose. Anything not listed
// maps to PurposeUnknown.
func PurposeFromString(str string) Purpose {
	switch str {
	case "signup_verification":
		return PurposeSignupVerification
	case "email_change":
		return PurposeEmailChange
	case "password_reset":
		return PurposePasswordReset
	default:
		return PurposeUnknown
	}
}

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

func (p Purpose) IsUnknown() bool {
	switch p {
	case PurposeSignupVerification, PurposeEmailChange, PurposePasswordReset:
		return false
	default:
		return true
	}
}
