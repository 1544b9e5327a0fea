package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ContainsDigit reports whether s has any Unicode number character.
func ContainsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsNumber) >= 0
}

// ParseIntVar parses a numeric path variable
func ParseIntVar(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, value)
	}
	return n, nil
}

// FormatBranchAccount formats branch and account number
// Format: 0000-000000 (branch padded to 4, account number padded to 6)
func FormatBranchAccount(branch, accountNumber int) string {
	return fmt.Sprintf("%04d-%06d", branch, accountNumber)
}
