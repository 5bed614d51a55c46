// pkg/installer/url.go

package installer

import (
	"fmt"

	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
)

// Release-repository and MSI download URL templates, parameterized by the
// major version line and the distro tag. Agent and server share the same
// release package.
const (
	aptReleaseURLTemplate = "https://apt.puppet.com/puppet%s-release-%s.deb"
	yumReleaseURLTemplate = "https://yum.puppetlabs.com/puppet%s-release-el-%s.noarch.rpm"
	msiLatestURLTemplate  = "https://downloads.puppet.com/windows/puppet%s/puppet-agent-x64-latest.msi"
	msiExactURLTemplate   = "https://downloads.puppet.com/windows/puppet%s/puppet-agent-%s-x64.msi"
)

// ReleasePackageURL builds the download URL of the distro release package
// that registers the Puppet repository.
func ReleasePackageURL(pm platform.PackageManager, rel platform.OSRelease, major string) (string, error) {
	tag := rel.PackageTag()
	if tag == "" {
		return "", cerr.Newf("could not determine a package tag for %s %s", rel.ID, rel.VersionID)
	}
	switch pm {
	case platform.Apt:
		return fmt.Sprintf(aptReleaseURLTemplate, major, tag), nil
	case platform.Yum:
		return fmt.Sprintf(yumReleaseURLTemplate, major, tag), nil
	default:
		return "", cerr.Newf("no release package URL for package manager %q", pm)
	}
}

// MSIDownloadURL builds the Windows agent installer URL: the pinned MSI
// when an exact version was requested, otherwise the latest of the line.
func MSIDownloadURL(v puppet.Version) string {
	if v.Exact != "" {
		return fmt.Sprintf(msiExactURLTemplate, v.Major, v.Exact)
	}
	return fmt.Sprintf(msiLatestURLTemplate, v.Major)
}
