// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Prompter collects and validates interactive input. Prompt text goes to
// stderr so stdout stays clean for automation; every prompt is mirrored to
// the structured log as a "terminal prompt:" entry for the audit trail.
//
// Each call returns a fresh value and retains nothing between prompts.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter bound to stdin/stderr.
func NewPrompter() *Prompter {
	return &Prompter{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// NewPrompterFrom binds a Prompter to arbitrary streams, for tests.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine shows a label and returns one trimmed line of input.
func (p *Prompter) readLine(ctx context.Context, label string) (string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Info("terminal prompt: " + label)

	if _, err := fmt.Fprint(p.out, label+": "); err != nil {
		return "", cerr.Wrap(err, "failed to write prompt")
	}

	text, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", cerr.Wrap(err, "failed to read input")
	}

	value := strings.TrimSpace(text)
	logger.Debug("User input received", zap.String("label", label), zap.String("value", value))
	return value, nil
}

// String prompts for a string. A mandatory prompt re-asks until the answer
// is non-empty; an optional one accepts an empty answer as "skip".
func (p *Prompter) String(ctx context.Context, prompt string, mandatory bool) (string, error) {
	if mandatory {
		for {
			value, err := p.readLine(ctx, prompt)
			if err != nil {
				return "", err
			}
			if value != "" {
				return value, nil
			}
		}
	}
	return p.readLine(ctx, prompt+" (optional - press enter to skip)")
}

// StringValidated prompts like String but re-asks until the validator passes.
// Optional prompts still accept empty input without running the validator.
func (p *Prompter) StringValidated(ctx context.Context, prompt string, mandatory bool, validate func(string) error) (string, error) {
	for {
		value, err := p.String(ctx, prompt, mandatory)
		if err != nil {
			return "", err
		}
		if value == "" && !mandatory {
			return "", nil
		}
		if validate == nil {
			return value, nil
		}
		if verr := validate(value); verr != nil {
			otelzap.Ctx(ctx).Warn("Invalid input", zap.String("input", value), zap.Error(verr))
			fmt.Fprintf(p.out, "Invalid input: %v\n", verr)
			continue
		}
		return value, nil
	}
}

// Bool prompts a yes/no question. It accepts y/yes/n/no case-insensitively
// and re-asks indefinitely on anything else; it never silently defaults.
func (p *Prompter) Bool(ctx context.Context, prompt string) (bool, error) {
	for {
		value, err := p.readLine(ctx, prompt+" [y]es/[n]o")
		if err != nil {
			return false, err
		}
		if answer, ok := NormalizeYesNo(value); ok {
			return answer, nil
		}
		otelzap.Ctx(ctx).Warn("Invalid yes/no response", zap.String("input", value))
		fmt.Fprintf(p.out, "Invalid response %q\n", value)
	}
}

// Array prompts for a comma-separated list. The mandatory variant re-asks
// until at least one element is supplied.
func (p *Prompter) Array(ctx context.Context, prompt string, mandatory bool) ([]string, error) {
	label := prompt + " [if specifying more than one separate with a comma]"
	value, err := p.String(ctx, label, mandatory)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// Display shows informational text on the interactive stream and mirrors
// it to the structured log.
func (p *Prompter) Display(ctx context.Context, text string) {
	otelzap.Ctx(ctx).Info("terminal prompt: " + text)
	fmt.Fprintln(p.out, text)
}

// Secret prompts for hidden input (service-account credentials). Requires
// a terminal; unattended runs must pass credentials via flags instead.
func (p *Prompter) Secret(ctx context.Context, prompt string) (string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Info("terminal prompt: " + prompt + " (hidden)")

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", cerr.New("secret prompt failed: no terminal available")
	}

	fmt.Fprint(p.out, prompt+": ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", cerr.Wrap(err, "failed to read secret input")
	}
	return strings.TrimSpace(string(raw)), nil
}

// NormalizeYesNo parses an affirmative/negative response. The second return
// reports whether the input was recognized at all.
func NormalizeYesNo(input string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
