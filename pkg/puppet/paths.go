// pkg/puppet/paths.go

package puppet

import (
	"path/filepath"
	"runtime"
)

// Puppet does not install itself onto the PATH, so every invocation uses
// the full well-known location.

// BinDir returns the directory holding the puppet binaries.
func BinDir() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files\Puppet Labs\Puppet\bin`
	}
	return "/opt/puppetlabs/bin"
}

// BinPath returns the puppet executable path.
func BinPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(BinDir(), "puppet.bat")
	}
	return filepath.Join(BinDir(), "puppet")
}

// ConfDir returns the puppet configuration directory.
func ConfDir() string {
	if runtime.GOOS == "windows" {
		return `C:\ProgramData\PuppetLabs\puppet\etc`
	}
	return "/etc/puppetlabs/puppet"
}

// ConfigFilePath returns the puppet.conf location.
func ConfigFilePath() string {
	return filepath.Join(ConfDir(), "puppet.conf")
}

// CSRAttributesPath returns the csr_attributes.yaml location, read by the
// agent when it generates its first certificate request.
func CSRAttributesPath() string {
	return filepath.Join(ConfDir(), "csr_attributes.yaml")
}

// AutosignPath returns the server-side autosign policy file.
func AutosignPath() string {
	return filepath.Join(ConfDir(), "autosign.conf")
}
