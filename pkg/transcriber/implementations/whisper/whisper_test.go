//go:build !whisper
// +build !whisper

package whisper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotSupported(t *testing.T) {
	require.False(t, Supported)
	_, err := New(context.Background(), DefaultModelPath, 0)
	require.Error(t, err)
}
