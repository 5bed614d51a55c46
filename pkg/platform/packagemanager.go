// pkg/platform/packagemanager.go

package platform

import (
	"os"

	cerr "github.com/cockroachdb/errors"
)

// PackageManager identifies the system package manager.
type PackageManager string

const (
	Apt PackageManager = "apt"
	Yum PackageManager = "yum"
	Msi PackageManager = "msi"
)

// DetectPackageManager probes for a supported package manager. On Windows
// the MSI engine is always available.
func DetectPackageManager() (PackageManager, error) {
	if GetOSPlatform() == "windows" {
		return Msi, nil
	}
	if _, err := os.Stat("/usr/bin/apt"); err == nil {
		return Apt, nil
	}
	if _, err := os.Stat("/usr/bin/yum"); err == nil {
		return Yum, nil
	}
	return "", cerr.New("no supported package manager found (need apt or yum)")
}
