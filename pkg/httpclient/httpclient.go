// pkg/httpclient/httpclient.go

package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"time"
)

var defaultClient = &http.Client{
	// Installer artifacts are tens of megabytes on slow provisioning
	// networks, so the overall timeout is generous.
	Timeout: 10 * time.Minute,
	Transport: &http.Transport{
		TLSClientConfig: getTLSConfig(),
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

// DefaultClient returns the preconfigured HTTP client used for downloads.
func DefaultClient() *http.Client {
	return defaultClient
}

// SetDefaultClient replaces the default client, for tests.
func SetDefaultClient(client *http.Client) {
	defaultClient = client
}

func getTLSConfig() *tls.Config {
	// Lab environments with intercepting proxies can opt out of verification.
	if os.Getenv("PUPPET_BOOTSTRAP_INSECURE_TLS") == "true" {
		return &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS12,
		}
	}
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}
