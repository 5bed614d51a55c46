// pkg/platform/osrelease.go

package platform

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// OSRelease holds the fields of /etc/os-release that drive package
// selection. Debian-family releases are addressed by codename, RHEL-family
// by numeric version.
type OSRelease struct {
	ID        string
	VersionID string
	Codename  string
}

var supportedLinuxIDs = []string{"ubuntu", "debian", "centos", "rhel"}

// GetOSPlatform reports the coarse platform family.
func GetOSPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "macos"
	default:
		return "linux"
	}
}

// DetectOS reads /etc/os-release and returns the distro identity.
func DetectOS() (OSRelease, error) {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return OSRelease{}, cerr.Wrap(err, "unable to determine OS identity")
	}
	defer f.Close()
	return ParseOSRelease(f)
}

// ParseOSRelease parses os-release key=value content.
func ParseOSRelease(r io.Reader) (OSRelease, error) {
	var rel OSRelease
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			rel.ID = strings.ToLower(value)
		case "VERSION_ID":
			rel.VersionID = value
		case "VERSION_CODENAME":
			rel.Codename = value
		}
	}
	if err := scanner.Err(); err != nil {
		return OSRelease{}, cerr.Wrap(err, "failed to read os-release")
	}
	if rel.ID == "" {
		return OSRelease{}, cerr.New("os-release did not contain an ID field")
	}
	return rel, nil
}

// CheckSupported verifies the distro is one we can bootstrap.
func (r OSRelease) CheckSupported() error {
	for _, id := range supportedLinuxIDs {
		if r.ID == id {
			return nil
		}
	}
	return cerr.Newf("unsupported OS %q (supported: %s)", r.ID, strings.Join(supportedLinuxIDs, ", "))
}

// IsDebianFamily reports whether packages are selected by codename.
func (r OSRelease) IsDebianFamily() bool {
	return r.ID == "ubuntu" || r.ID == "debian"
}

// PackageTag returns the distro tag used in the release-package URL:
// codename for Debian-family, major version for RHEL-family.
func (r OSRelease) PackageTag() string {
	if r.IsDebianFamily() {
		return r.Codename
	}
	// CentOS/RHEL URLs want the major version only ("9", not "9.3").
	major, _, _ := strings.Cut(r.VersionID, ".")
	return major
}
