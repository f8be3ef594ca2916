package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront/internal/errors"
)

var (
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	last4Regex  = regexp.MustCompile(`^\d{4}$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// CardValidator validates card information. Full card numbers are checked
// and reduced to their last four digits; they are never stored.
type CardValidator struct {
	now func() time.Time
}

// NewCardValidator creates a new card validator.
func NewCardValidator() *CardValidator {
	return &CardValidator{now: time.Now}
}

// Last4FromNumber validates a full card number with the Luhn algorithm and
// returns its last four digits.
func (v *CardValidator) Last4FromNumber(cardNumber string) (string, error) {
	// Remove spaces and dashes from card number
	cardNumber = strings.ReplaceAll(strings.ReplaceAll(cardNumber, " ", ""), "-", "")
	if !v.validateLuhn(cardNumber) {
		return "", errors.ErrInvalidCard
	}
	return cardNumber[len(cardNumber)-4:], nil
}

// ValidateLast4 checks a bare last-four value.
func (v *CardValidator) ValidateLast4(last4 string) error {
	if !last4Regex.MatchString(last4) {
		return errors.ErrInvalidCard
	}
	return nil
}

// ValidateExpiry checks an MM/YY expiry that is not in the past.
func (v *CardValidator) ValidateExpiry(expiry string) error {
	if !expiryRegex.MatchString(expiry) || !v.validateExpiry(expiry) {
		return errors.ErrInvalidCard
	}
	return nil
}

// validateLuhn validates a card number using the Luhn algorithm.
func (v *CardValidator) validateLuhn(cardNumber string) bool {
	if nonDigits.MatchString(cardNumber) {
		return false
	}
	if len(cardNumber) < 13 || len(cardNumber) > 19 {
		return false
	}

	sum := 0
	isEven := false

	// Process from right to left
	for i := len(cardNumber) - 1; i >= 0; i-- {
		digit, err := strconv.Atoi(string(cardNumber[i]))
		if err != nil {
			return false
		}

		if isEven {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isEven = !isEven
	}

	return sum%10 == 0
}

// validateExpiry validates that the expiry month has not passed.
func (v *CardValidator) validateExpiry(expiry string) bool {
	parts := strings.Split(expiry, "/")
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	year += 2000

	now := v.now()
	expiryDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	// Expiry should be at least the current month
	return expiryDate.After(now.AddDate(0, -1, 0))
}

// DetectBrand guesses the card network from the leading digits.
func (v *CardValidator) DetectBrand(cardNumber string) string {
	digits := nonDigits.ReplaceAllString(cardNumber, "")
	switch {
	case strings.HasPrefix(digits, "4"):
		return "Visa"
	case len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return "Mastercard"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "Amex"
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"):
		return "Discover"
	default:
		return ""
	}
}
