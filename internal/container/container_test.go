package container

import (
	"io"
	"testing"

	"inflammation/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New(config.Default(), io.Discard)
	require.NoError(t, err)
	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.Engine)
	assert.NotNil(t, c.Analysis)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, io.Discard)
	assert.Error(t, err)
}
