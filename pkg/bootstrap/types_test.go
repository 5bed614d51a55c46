// pkg/bootstrap/types_test.go

package bootstrap

import (
	"testing"

	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *Request {
	return &Request{
		Role:        RoleAgentLinux,
		Version:     puppet.Version{Major: "7"},
		Server:      "puppet.example.com",
		Port:        8140,
		Environment: "production",
	}
}

func TestNormalizeUnattendedImpliesSkips(t *testing.T) {
	req := &Request{Unattended: true}
	req.Normalize()

	assert.True(t, req.SkipConfirmation)
	assert.True(t, req.SkipOptionalPrompts)
	assert.True(t, req.SkipServerCheck)
}

func TestNormalizeLeavesAttendedFlagsAlone(t *testing.T) {
	req := &Request{SkipConfirmation: true}
	req.Normalize()

	assert.True(t, req.SkipConfirmation)
	assert.False(t, req.SkipOptionalPrompts)
	assert.False(t, req.SkipServerCheck)
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing version", func(r *Request) { r.Version = puppet.Version{} }},
		{"unqualified server", func(r *Request) { r.Server = "puppet" }},
		{"missing server", func(r *Request) { r.Server = "" }},
		{"port too high", func(r *Request) { r.Port = 70000 }},
		{"port zero", func(r *Request) { r.Port = 0 }},
		{"missing environment", func(r *Request) { r.Environment = "" }},
		{"unknown role", func(r *Request) { r.Role = Role("desktop") }},
		{"bad csr extension", func(r *Request) { r.CSRExtensions = map[string]string{"pp_bogus": "x"} }},
		{"negative cert wait", func(r *Request) { r.WaitForCert = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
		})
	}
}

func TestServiceUnit(t *testing.T) {
	assert.Equal(t, "puppet", (&Request{Role: RoleAgentLinux}).ServiceUnit())
	assert.Equal(t, "puppet", (&Request{Role: RoleAgentWindows}).ServiceUnit())
	assert.Equal(t, "puppetserver", (&Request{Role: RoleServer}).ServiceUnit())
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "example.com", DomainOf("puppet.example.com"))
	assert.Equal(t, "sub.example.com", DomainOf("node.sub.example.com"))
	assert.Empty(t, DomainOf("puppet"))
}

func TestQualifyHostname(t *testing.T) {
	assert.Equal(t, "puppet.example.com", QualifyHostname("puppet", "example.com"))
	assert.Equal(t, "puppet.example.com", QualifyHostname("puppet.example.com", "other.org"))
	assert.Equal(t, "puppet", QualifyHostname("puppet", ""))
}
