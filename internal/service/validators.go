package service

import "fmt"

// cardNumberLength is the fixed length of issued card numbers.
const cardNumberLength = 16

// ValidateLuhn validates a card number using the Luhn algorithm
func ValidateLuhn(cardNumber string) error {
	if cardNumber == "" {
		return fmt.Errorf("invalid card number: empty")
	}

	var digits []int
	for _, r := range cardNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid card number: must contain only digits")
		}
		digits = append(digits, int(r-'0'))
	}

	sum := 0
	isSecond := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]

		if isSecond {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isSecond = !isSecond
	}

	if sum%10 != 0 {
		return fmt.Errorf("invalid card number: failed Luhn check")
	}

	return nil
}

// ValidateCardNumber checks that a card number is exactly 16 digits and
// passes the Luhn check
func ValidateCardNumber(cardNumber string) error {
	if len(cardNumber) != cardNumberLength {
		return fmt.Errorf("invalid card number length: must be %d digits", cardNumberLength)
	}

	return ValidateLuhn(cardNumber)
}

// ValidatePIN checks that a PIN has the expected length and only digits
func ValidatePIN(pin string, length int) error {
	if len(pin) != length {
		return fmt.Errorf("invalid PIN: must be %d digits", length)
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid PIN: must contain only digits")
		}
	}

	return nil
}

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}
