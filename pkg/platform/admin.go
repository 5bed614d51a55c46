// pkg/platform/admin.go

package platform

import (
	"context"
	"os"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
)

// IsElevated reports whether the process has administrative privileges.
// On Linux that means euid 0; on Windows, membership in the Administrators
// group checked via `net session`, which fails for unprivileged shells.
func IsElevated(ctx context.Context) bool {
	if GetOSPlatform() == "windows" {
		_, err := execute.Run(ctx, execute.Options{
			Command: "net",
			Args:    []string{"session"},
			Capture: true,
		})
		return err == nil
	}
	return os.Geteuid() == 0
}
