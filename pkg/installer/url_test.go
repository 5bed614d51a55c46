// pkg/installer/url_test.go

package installer

import (
	"testing"

	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleasePackageURL(t *testing.T) {
	tests := []struct {
		name string
		pm   platform.PackageManager
		rel  platform.OSRelease
		want string
	}{
		{
			name: "ubuntu uses the codename",
			pm:   platform.Apt,
			rel:  platform.OSRelease{ID: "ubuntu", VersionID: "22.04", Codename: "jammy"},
			want: "https://apt.puppet.com/puppet7-release-jammy.deb",
		},
		{
			name: "centos uses the major release",
			pm:   platform.Yum,
			rel:  platform.OSRelease{ID: "centos", VersionID: "8.5"},
			want: "https://yum.puppetlabs.com/puppet7-release-el-8.noarch.rpm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReleasePackageURL(tt.pm, tt.rel, "7")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReleasePackageURLUnknownManager(t *testing.T) {
	_, err := ReleasePackageURL(platform.Msi, platform.OSRelease{ID: "ubuntu", Codename: "jammy"}, "7")
	assert.Error(t, err)
}

func TestMSIDownloadURL(t *testing.T) {
	latest := MSIDownloadURL(puppet.Version{Major: "7"})
	assert.Equal(t, "https://downloads.puppet.com/windows/puppet7/puppet-agent-x64-latest.msi", latest)

	exact := MSIDownloadURL(puppet.Version{Major: "7", Exact: "7.12.1"})
	assert.Equal(t, "https://downloads.puppet.com/windows/puppet7/puppet-agent-7.12.1-x64.msi", exact)
}
