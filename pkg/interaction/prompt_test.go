// pkg/interaction/prompt_test.go

package interaction

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompterFrom(strings.NewReader(input), out), out
}

func TestStringMandatoryReasksUntilNonEmpty(t *testing.T) {
	p, _ := newTestPrompter("\n\nweb01.example.com\n")

	value, err := p.String(context.Background(), "What is the hostname?", true)
	require.NoError(t, err)
	assert.Equal(t, "web01.example.com", value)
}

func TestStringOptionalAcceptsEmpty(t *testing.T) {
	p, out := newTestPrompter("\n")

	value, err := p.String(context.Background(), "Certificate name", false)
	require.NoError(t, err)
	assert.Empty(t, value)
	assert.Contains(t, out.String(), "optional")
}

func TestStringValidatedReasksOnInvalidInput(t *testing.T) {
	p, out := newTestPrompter("not-an-fqdn\npuppet.example.com\n")

	value, err := p.StringValidated(context.Background(), "Puppet server", true, ValidateFQDN)
	require.NoError(t, err)
	assert.Equal(t, "puppet.example.com", value)
	assert.Contains(t, out.String(), "Invalid input")
}

func TestBoolReasksUntilRecognized(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain yes", "yes\n", true},
		{"short no", "n\n", false},
		{"mixed case after garbage", "maybe\nSURE\nY\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Bool(context.Background(), "Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArraySplitsAndTrims(t *testing.T) {
	p, _ := newTestPrompter("alpha, beta ,gamma\n")

	got, err := p.Array(context.Background(), "Which classes?", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestArrayOptionalEmptyReturnsNil(t *testing.T) {
	p, _ := newTestPrompter("\n")

	got, err := p.Array(context.Background(), "Which classes?", false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNormalizeYesNo(t *testing.T) {
	tests := []struct {
		input      string
		want       bool
		recognized bool
	}{
		{"y", true, true},
		{"YES", true, true},
		{" no ", false, true},
		{"n", false, true},
		{"", false, false},
		{"yep", false, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeYesNo(tt.input)
		assert.Equal(t, tt.recognized, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
