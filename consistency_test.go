package skylar

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestParseConsistencyLevel(t *testing.T) {
	names := []string{
		"ONE",
		"TWO",
		"THREE",
		"QUORUM",
		"ALL",
		"LOCAL_QUORUM",
		"EACH_QUORUM",
		"SERIAL",
		"LOCAL_SERIAL",
		"LOCAL_ONE",
	}
	for _, name := range names {
		level, err := ParseConsistencyLevel(name)
		require.Nil(t, err)
		require.Equal(t, name, level.String())
	}
}

func TestParseConsistencyLevelCaseInsensitive(t *testing.T) {
	level, err := ParseConsistencyLevel("local_quorum")
	require.Nil(t, err)
	require.Equal(t, ConsistencyLocalQuorum, level)
}

func TestParseConsistencyLevelUnknown(t *testing.T) {
	_, err := ParseConsistencyLevel("SOMETIMES")
	require.NotNil(t, err)
	_, ok := err.(*ConfigError)
	require.True(t, ok)
}
