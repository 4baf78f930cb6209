package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// Server-side re-validation of externally supplied form fields. The original
// storefront only enforced these as HTML input patterns in the browser.
var (
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	upiTxnRe  = regexp.MustCompile(`^[0-9]{12}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// ValidPhone reports whether s is a 10-digit phone number.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// ValidPincode reports whether s is a 6-digit postal pincode.
func ValidPincode(s string) bool {
	return pincodeRe.MatchString(strings.TrimSpace(s))
}

// ValidUPITransactionID reports whether s is a 12-digit UPI transaction
// reference. This is a format check only; the payment itself is never
// verified.
func ValidUPITransactionID(s string) bool {
	return upiTxnRe.MatchString(strings.TrimSpace(s))
}

// ParseQuantity parses a form quantity and requires it to be a positive
// integer.
func ParseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
