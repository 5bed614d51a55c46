// pkg/installer/download.go

package installer

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	"github.com/chiselops/puppet-bootstrap/pkg/httpclient"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Download fetches url into the system temp directory and returns the
// local path of the artifact.
func Download(ctx context.Context, url string) (string, error) {
	logger := otelzap.Ctx(ctx)
	dest := filepath.Join(os.TempDir(), filepath.Base(url))

	logger.Info("Downloading installer artifact",
		zap.String("url", url),
		zap.String("dest", dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cerr.Wrap(err, "failed to build download request")
	}
	resp, err := httpclient.DefaultClient().Do(req)
	if err != nil {
		return "", cerr.Wrapf(err, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", cerr.Newf("download of %s failed with status %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", cerr.Wrapf(err, "failed to create %s", dest)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", cerr.Wrapf(err, "failed to write %s", dest)
	}
	return dest, nil
}

// DownloadWithBITS tries a BITS transfer first for speed on Windows and
// falls back to a plain HTTP fetch when BITS is unavailable or fails.
func DownloadWithBITS(ctx context.Context, url string) (string, error) {
	logger := otelzap.Ctx(ctx)
	dest := filepath.Join(os.TempDir(), filepath.Base(url))

	_, err := execute.Run(ctx, execute.Options{
		Command: "powershell",
		Args: []string{"-NoProfile", "-NonInteractive", "-Command",
			"Start-BitsTransfer -Source '" + url + "' -Destination '" + dest + "'"},
		Capture: true,
	})
	if err == nil {
		return dest, nil
	}

	logger.Warn("BITS transfer failed, falling back to HTTP", zap.Error(err))
	return Download(ctx, url)
}
