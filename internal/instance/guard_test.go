package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Exclusive(t *testing.T) {
	first, err := Acquire()
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire()
	assert.Error(t, err)
}

func TestGuard_ReleaseAllowsReacquire(t *testing.T) {
	first, err := Acquire()
	require.NoError(t, err)
	first.Release()

	second, err := Acquire()
	require.NoError(t, err)
	second.Release()
}

func TestGuard_NilRelease(t *testing.T) {
	var g *Guard
	g.Release()
}
