package engineerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Validation: "validation",
		Lookup:     "lookup",
		IO:         "io",
		Fatal:      "fatal",
		Kind(99):   "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := Lookupf("effect %d missing", 3)
	assert.True(t, Is(err, Lookup))
	assert.False(t, Is(err, Validation))
}

func TestIOfWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := IOf(cause, "send to %s failed", "10.0.0.5:6454")
	require.ErrorIs(t, err, cause)
	assert.True(t, Is(err, IO))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), Lookup))
}
