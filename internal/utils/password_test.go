package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2!", hash)

	require.True(t, CheckPassword(hash, "hunter2!"))
	require.False(t, CheckPassword(hash, "hunter2"))
}
