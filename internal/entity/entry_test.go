package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaxRate(t *testing.T) {
	require.Equal(t, 0.10, TaxRate("課仕10%"))
	require.Equal(t, 0.08, TaxRate("課仕8%"))
	require.Equal(t, 0.08, TaxRate("課仕8%（軽減）"))
	require.Equal(t, 0.05, TaxRate("課仕5%"))
	require.Equal(t, 0.0, TaxRate("非課仕"))
	require.Equal(t, 0.0, TaxRate("対象外"))
	require.Equal(t, 0.0, TaxRate(""))
}

func TestComputeTaxExclusive(t *testing.T) {
	// 外税: floor(amount * rate)
	require.Equal(t, 100.0, ComputeTax(1000, 0.10, false))
	require.Equal(t, 99.0, ComputeTax(999, 0.10, false))
}

func TestComputeTaxInclusive(t *testing.T) {
	// 内税: floor(amount * rate / (1 + rate))
	require.Equal(t, 100.0, ComputeTax(1100, 0.10, true))
	require.Equal(t, 90.0, ComputeTax(1000, 0.10, true))
}

func TestComputeTaxZeroCases(t *testing.T) {
	require.Equal(t, 0.0, ComputeTax(1000, 0, false))
	require.Equal(t, 0.0, ComputeTax(0, 0.10, false))
	require.Equal(t, 0.0, ComputeTax(-500, 0.10, false))
}
