package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	first := GenerateUUID()
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	require.NotEqual(t, first, GenerateUUID())
}

func TestGenerateUUIDV4(t *testing.T) {
	id := GenerateUUIDV4()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}
