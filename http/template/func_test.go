package template

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/onerror"
)

func TestAddFn(t *testing.T) {
	// Arrange
	tcs := []struct {
		name   string
		first  string
		second any
		length int
	}{
		{"zero-first", "", nil, 1},
		{"struct-second", "still nil", struct{}{}, 2},
		{"one-good", "one", func() {}, 3},
		{"repeat", "one", func() {}, 3},
	}

	p := &Parse{}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			require.NotPanics(t, func() { p.AddFn(tc.first, tc.second) })

			// Assert
			require.Len(t, p.fns, tc.length)
		})
	}
}

func TestEnv(t *testing.T) {
	// Act
	name, fn := Env(onerror.Testing)

	// Assert
	require.Equal(t, "env", name)
	require.Equal(t, "TESTING", fn())
}

func TestNonce(t *testing.T) {
	// Arrange + Act
	name, fn := Nonce()

	// Assert
	require.Equal(t, "nonce", name)
	require.NotEqual(t, fn(), fn())
}

func TestStatusText(t *testing.T) {
	// Arrange + Act
	name, fn := StatusText()

	// Assert
	require.Equal(t, "statusText", name)
	require.Equal(t, "Not Found", fn(http.StatusNotFound))
}
