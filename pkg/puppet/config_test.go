// pkg/puppet/config_test.go

package puppet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConfigOptionsRejectsUnknownSection(t *testing.T) {
	err := SetConfigOptions(context.Background(), "bogus", []Option{{Key: "server", Value: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
