// pkg/interaction/validate_test.go

package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFQDN(t *testing.T) {
	valid := []string{
		"puppet.example.com",
		"a.b.co",
		"node-01.sub.example.org",
		"PUPPET.EXAMPLE.COM",
	}
	for _, v := range valid {
		assert.NoError(t, ValidateFQDN(v), v)
	}

	invalid := []string{
		"",
		"puppet",
		"puppet.",
		".example.com",
		"puppet_server.example.com",
		"puppet example.com",
		"-bad.example.com",
	}
	for _, v := range invalid {
		assert.Error(t, ValidateFQDN(v), v)
	}
}

func TestValidateVersion(t *testing.T) {
	for _, v := range []string{"7", "8", "7.12.0", "7.1"} {
		assert.NoError(t, ValidateVersion(v), v)
	}
	for _, v := range []string{"", "seven", "7.x", "7.12.0-rc1", "v7"} {
		assert.Error(t, ValidateVersion(v), v)
	}
}

func TestValidatePort(t *testing.T) {
	for _, v := range []string{"1", "8140", "65535"} {
		assert.NoError(t, ValidatePort(v), v)
	}
	for _, v := range []string{"0", "65536", "-1", "", "http"} {
		assert.Error(t, ValidatePort(v), v)
	}
}
