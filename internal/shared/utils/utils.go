package utils

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// IBANPrefix is the fixed prefix of locally issued account numbers.
// The full format is ACC + zero-padded customer number, e.g. ACC000042.
const IBANPrefix = "ACC"

// FormatIBAN builds the account number for a customer number.
func FormatIBAN(customerNumber int) string {
	return fmt.Sprintf("%s%06d", IBANPrefix, customerNumber)
}

// ParseIBAN extracts the customer number from an account number string.
// A malformed prefix, a non-numeric suffix, or a non-positive result is an
// error: customer numbers start at 1.
func ParseIBAN(iban string) (int, error) {
	if !strings.HasPrefix(iban, IBANPrefix) {
		return 0, fmt.Errorf("invalid IBAN format: %q", iban)
	}
	n, err := strconv.Atoi(iban[len(IBANPrefix):])
	if err != nil {
		return 0, fmt.Errorf("invalid IBAN format: %q", iban)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid IBAN format: %q", iban)
	}
	return n, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
