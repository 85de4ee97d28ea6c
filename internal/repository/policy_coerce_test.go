package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerceFloat(t *testing.T) {
	require.Equal(t, 120.5, coerceFloat(120.5))
	require.Equal(t, 120.0, coerceFloat(int32(120)))
	require.Equal(t, 120.0, coerceFloat(int64(120)))
	require.Equal(t, 120.5, coerceFloat("120.5"))
	require.Equal(t, 0.0, coerceFloat("not a number"))
	require.Equal(t, 0.0, coerceFloat(nil))
}

func TestCoerceInt(t *testing.T) {
	require.Equal(t, int64(65), coerceInt(int32(65)))
	require.Equal(t, int64(65), coerceInt(int64(65)))
	require.Equal(t, int64(65), coerceInt(65.0))
	require.Equal(t, int64(65), coerceInt("65"))
	require.Equal(t, int64(0), coerceInt("sixty-five"))
	require.Equal(t, int64(0), coerceInt(nil))
}

func TestPolicyDocCoercesLegacyStrings(t *testing.T) {
	doc := policyDoc{
		Title:         "Term Life Shield",
		MinAge:        "18",
		MaxAge:        int32(65),
		Coverage:      "500000",
		Duration:      20.0,
		BasePremium:   "120",
		PurchaseCount: int64(3),
	}

	p := doc.toModel()
	require.Equal(t, 18, p.MinAge)
	require.Equal(t, 65, p.MaxAge)
	require.Equal(t, 500000.0, p.Coverage)
	require.Equal(t, 20.0, p.Duration)
	require.Equal(t, 120.0, p.BasePremium)
	require.Equal(t, int64(3), p.PurchaseCount)
}
