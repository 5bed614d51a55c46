// pkg/interaction/validate.go

package interaction

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	fqdnPattern    = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)
	versionPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// ValidateFQDN ensures the input is a fully-qualified domain name.
func ValidateFQDN(input string) error {
	if !fqdnPattern.MatchString(strings.ToLower(input)) {
		return errors.New("must be a fully qualified domain name (e.g. puppet.example.com)")
	}
	return nil
}

// ValidateVersion ensures the input is a major version ("7") or an exact
// dotted version ("7.12.0").
func ValidateVersion(input string) error {
	if !versionPattern.MatchString(input) {
		return errors.New("must be a major version (e.g. 7) or an exact version (e.g. 7.1.2)")
	}
	return nil
}

// ValidatePort ensures the input is a TCP port number.
func ValidatePort(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("must be a port number between 1 and 65535")
	}
	return nil
}

// ValidateNonEmpty ensures the input is not blank.
func ValidateNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input cannot be empty")
	}
	return nil
}
