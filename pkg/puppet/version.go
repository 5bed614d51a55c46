// pkg/puppet/version.go

package puppet

import (
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
)

// Version is the resolved Puppet version selector. Exact, when present,
// pins the package version; Major always carries the release line used to
// build the download URL.
type Version struct {
	Major string
	Exact string
}

// ParseVersion splits a version selector into its major line and, when the
// input is fully pinned (x.y.z), the exact version. A bare major ("7") or a
// partial version ("7.1") selects the latest release of that line.
func ParseVersion(input string) (Version, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Version{}, cerr.New("version must not be empty")
	}

	v, err := goversion.NewVersion(input)
	if err != nil {
		return Version{}, cerr.Wrapf(err, "invalid version %q", input)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, cerr.Newf("invalid version %q: pre-release selectors are not supported", input)
	}

	out := Version{Major: strconv.Itoa(v.Segments()[0])}
	if strings.Count(input, ".") >= 2 {
		out.Exact = input
	}
	return out, nil
}

// String renders the selector for operator-facing summaries.
func (v Version) String() string {
	if v.Exact != "" {
		return v.Exact
	}
	return v.Major + " (latest available)"
}
