// pkg/interaction/resolver.go

package interaction

import (
	"context"

	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	cerr "github.com/cockroachdb/errors"
)

// Field declares one resolvable setting: how it is prompted for, whether it
// may be skipped, what it falls back to, and how it is validated. Commands
// declare fields once and resolve them uniformly instead of scattering
// ad hoc prompt/validate code.
type Field struct {
	Name      string
	Prompt    string
	Default   string
	Mandatory bool
	Validate  func(string) error
}

// Resolver resolves each field from (explicit value) > (interactive prompt)
// > (default), honoring the skip-optional-prompts and unattended modes.
type Resolver struct {
	Prompter    *Prompter
	SkipPrompts bool
	Unattended  bool
}

// String resolves a single string field. supplied is the explicit value from
// the command line ("" when the flag was not given).
func (r *Resolver) String(ctx context.Context, f Field, supplied string) (string, error) {
	if supplied != "" {
		if f.Validate != nil {
			if err := f.Validate(supplied); err != nil {
				return "", pb_err.NewValidationError(cerr.Wrapf(err, "invalid value for %s", f.Name))
			}
		}
		return supplied, nil
	}

	if f.Default != "" && (r.Unattended || (r.SkipPrompts && !f.Mandatory)) {
		return f.Default, nil
	}
	if !f.Mandatory && (r.Unattended || r.SkipPrompts) {
		return "", nil
	}
	if r.Unattended {
		return "", pb_err.NewValidationError(
			cerr.Newf("%s is required in unattended mode and no value was supplied", f.Name))
	}

	return r.Prompter.StringValidated(ctx, f.Prompt, f.Mandatory, f.Validate)
}

// Array resolves a list field with the same precedence as String.
func (r *Resolver) Array(ctx context.Context, f Field, supplied []string) ([]string, error) {
	if len(supplied) > 0 {
		return supplied, nil
	}
	if r.Unattended || r.SkipPrompts {
		if f.Mandatory && r.Unattended {
			return nil, pb_err.NewValidationError(
				cerr.Newf("%s is required in unattended mode and no value was supplied", f.Name))
		}
		return nil, nil
	}
	return r.Prompter.Array(ctx, f.Prompt, f.Mandatory)
}

// OptionalBool asks a yes/no question unless optional prompts are skipped,
// in which case it reports the given default.
func (r *Resolver) OptionalBool(ctx context.Context, prompt string, def bool) (bool, error) {
	if r.Unattended || r.SkipPrompts {
		return def, nil
	}
	return r.Prompter.Bool(ctx, prompt)
}
