// pkg/platform/osrelease_test.go

package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian
`

const centosOSRelease = `NAME="CentOS Stream"
VERSION="9"
ID="centos"
ID_LIKE="rhel fedora"
VERSION_ID="9"
`

func TestParseOSRelease(t *testing.T) {
	rel, err := ParseOSRelease(strings.NewReader(ubuntuOSRelease))
	require.NoError(t, err)
	assert.Equal(t, "ubuntu", rel.ID)
	assert.Equal(t, "22.04", rel.VersionID)
	assert.Equal(t, "jammy", rel.Codename)

	rel, err = ParseOSRelease(strings.NewReader(centosOSRelease))
	require.NoError(t, err)
	assert.Equal(t, "centos", rel.ID)
	assert.Equal(t, "9", rel.VersionID)
	assert.Empty(t, rel.Codename)
}

func TestParseOSReleaseMissingID(t *testing.T) {
	_, err := ParseOSRelease(strings.NewReader("VERSION_ID=\"9\"\n"))
	assert.Error(t, err)
}

func TestCheckSupported(t *testing.T) {
	for _, id := range []string{"ubuntu", "debian", "centos", "rhel"} {
		assert.NoError(t, OSRelease{ID: id}.CheckSupported(), id)
	}
	err := OSRelease{ID: "arch"}.CheckSupported()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arch")
}

func TestPackageTag(t *testing.T) {
	assert.Equal(t, "jammy", OSRelease{ID: "ubuntu", VersionID: "22.04", Codename: "jammy"}.PackageTag())
	assert.Equal(t, "8", OSRelease{ID: "centos", VersionID: "8.5"}.PackageTag())
	assert.Equal(t, "9", OSRelease{ID: "rhel", VersionID: "9"}.PackageTag())
}
