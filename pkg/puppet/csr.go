// pkg/puppet/csr.go

package puppet

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Puppet recognizes a closed vocabulary of certificate-extension short
// names; anything else must be rejected rather than silently dropped,
// since the server's policy decisions depend on these values.
// https://www.puppet.com/docs/puppet/7/ssl_attributes_extensions.html

var registrationExtensionNames = []string{
	"pp_uuid",
	"pp_instance_id",
	"pp_image_name",
	"pp_preshared_key",
	"pp_cost_center",
	"pp_product",
	"pp_project",
	"pp_application",
	"pp_service",
	"pp_employee",
	"pp_created_by",
	"pp_environment",
	"pp_role",
	"pp_software_version",
	"pp_department",
	"pp_cluster",
	"pp_provisioner",
	"pp_region",
	"pp_datacenter",
	"pp_zone",
	"pp_network",
	"pp_securitypolicy",
	"pp_cloudplatform",
	"pp_apptier",
	"pp_hostname",
}

var authorizationExtensionNames = []string{
	"pp_authorization",
	"pp_auth_role",
}

var validExtensionNames = func() map[string]struct{} {
	m := make(map[string]struct{}, len(registrationExtensionNames)+len(authorizationExtensionNames))
	for _, n := range registrationExtensionNames {
		m[n] = struct{}{}
	}
	for _, n := range authorizationExtensionNames {
		m[n] = struct{}{}
	}
	return m
}()

// ValidateExtensionName checks a single key against the recognized short names.
func ValidateExtensionName(name string) error {
	if _, ok := validExtensionNames[name]; !ok {
		return cerr.Newf("invalid certificate extension short name %q", name)
	}
	return nil
}

// ValidateExtensions checks every key against the recognized short names.
func ValidateExtensions(extensions map[string]string) error {
	keys := make([]string, 0, len(extensions))
	for k := range extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := validExtensionNames[k]; !ok {
			return cerr.Newf("invalid certificate extension short name %q", k)
		}
	}
	return nil
}

type csrAttributes struct {
	ExtensionRequests map[string]string `yaml:"extension_requests"`
}

// WriteCSRAttributes validates and writes the CSR extension attributes to
// path, replacing any existing file. Validation happens before anything is
// written, and the content lands via rename, so the file is either fully
// valid or absent.
func WriteCSRAttributes(ctx context.Context, path string, extensions map[string]string) error {
	logger := otelzap.Ctx(ctx)

	if err := ValidateExtensions(extensions); err != nil {
		return err
	}

	content, err := yaml.Marshal(csrAttributes{ExtensionRequests: extensions})
	if err != nil {
		return cerr.Wrap(err, "failed to serialize CSR extension attributes")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".csr_attributes-*")
	if err != nil {
		return cerr.Wrap(err, "failed to create temporary CSR attributes file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return cerr.Wrap(err, "failed to write CSR extension attributes")
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return cerr.Wrap(err, "failed to set CSR attributes file mode")
	}
	if err := tmp.Close(); err != nil {
		return cerr.Wrap(err, "failed to close CSR attributes file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return cerr.Wrapf(err, "failed to replace %s", path)
	}

	logger.Info("Wrote CSR extension attributes",
		zap.String("path", path),
		zap.Int("count", len(extensions)))
	return nil
}
