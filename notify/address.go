package notify

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidAddress is returned for malformed destination addresses.
var ErrInvalidAddress = errors.New("invalid email address")

// ValidateAddress checks the shape of an email address: a non-empty local
// part, a single "@", and a domain with at least one dot whose final label
// is at least two characters long.
func ValidateAddress(address string) error {
	local, domain, ok := strings.Cut(address, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || utf8.RuneCountInString(domain[dot+1:]) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}
