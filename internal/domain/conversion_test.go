package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ValidCode(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"USD", "EUR", "XAU"} {
		require.True(t, ValidCode(ok), ok)
	}
	for _, bad := range []string{"usd", "US", "USDT", "jpy99", "U$D", ""} {
		require.False(t, ValidCode(bad), bad)
	}
}

func Test_Round6(t *testing.T) {
	t.Parallel()
	require.InDelta(t, 16666.666667, Round6(100/0.9*150), 1e-9)
	require.InDelta(t, 0.123457, Round6(0.12345678), 1e-9)
	require.InDelta(t, -0.123457, Round6(-0.12345678), 1e-9)
	require.InDelta(t, 1.0, Round6(1.0), 1e-9)
}
