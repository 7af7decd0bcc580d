package onerror_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/onerror"
)

func TestKeyString(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    onerror.Key
		expected string
	}{
		{"Zero-Value", "", "onerror context key: "},
		{"IpAddrKey", onerror.IpAddrKey, "onerror context key: IpAddrKey"},
		{"RequestIDKey", onerror.RequestIDKey, "onerror context key: RequestIDKey"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.input.String())
		})
	}
}

func TestKeyContextValue(t *testing.T) {
	// Arrange
	ctx := context.WithValue(context.Background(), onerror.RequestIDKey, "abc")

	// Act
	actual, ok := ctx.Value(onerror.RequestIDKey).(string)

	// Assert
	require.True(t, ok)
	require.Equal(t, "abc", actual)
	require.Nil(t, ctx.Value(onerror.Key("RequestIDKey ")))
}
