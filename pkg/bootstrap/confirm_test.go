// pkg/bootstrap/confirm_test.go

package bootstrap

import (
	"strings"
	"testing"

	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	"github.com/stretchr/testify/assert"
)

func summaryRequest() *Request {
	return &Request{
		Role:            RoleAgentLinux,
		Version:         puppet.Version{Major: "7", Exact: "7.12.1"},
		Server:          "puppet.example.com",
		Port:            8140,
		Environment:     "production",
		CurrentHostname: "web01.example.com",
		NewHostname:     "web01.example.com",
		EnableService:   true,
		WaitForCert:     30,
		CSRExtensions: map[string]string{
			"pp_role":        "webserver",
			"pp_environment": "production",
		},
		ServiceAccount:  "svc_puppet",
		ServiceDomain:   "CORP",
		ServicePassword: "hunter2secret",
	}
}

func TestSummaryIsDeterministic(t *testing.T) {
	req := summaryRequest()
	first := Summary(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Summary(req))
	}
}

func TestSummaryNeverContainsCredentials(t *testing.T) {
	s := Summary(summaryRequest())
	assert.NotContains(t, s, "hunter2secret")
	assert.Contains(t, s, "CORP\\svc_puppet")
	assert.Contains(t, s, "password hidden")
}

func TestSummaryListsExtensionsSorted(t *testing.T) {
	s := Summary(summaryRequest())
	assert.Less(t, // pp_environment sorts before pp_role
		indexOf(t, s, "pp_environment"),
		indexOf(t, s, "pp_role"))
}

func TestSummaryOmitsUnsetOptionals(t *testing.T) {
	req := &Request{
		Role:            RoleAgentLinux,
		Version:         puppet.Version{Major: "7"},
		Server:          "puppet.example.com",
		Port:            8140,
		Environment:     "production",
		CurrentHostname: "web01.example.com",
		NewHostname:     "web01.example.com",
	}
	s := Summary(req)
	assert.NotContains(t, s, "new hostname")
	assert.NotContains(t, s, "certificate name")
	assert.NotContains(t, s, "csr extension")
	assert.NotContains(t, s, "service account")
	assert.NotContains(t, s, "autosign")
}

func TestSummaryShowsHostnameChange(t *testing.T) {
	req := summaryRequest()
	req.NewHostname = "web02.example.com"
	s := Summary(req)
	assert.Contains(t, s, "new hostname")
	assert.Contains(t, s, "web02.example.com")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	idx := strings.Index(s, sub)
	assert.GreaterOrEqual(t, idx, 0, "summary must contain %q", sub)
	return idx
}
