package money_test

import (
	"testing"

	"criavo/pkg/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"150.00", 15000},
		{"150.5", 15050},
		{"0.01", 1},
		{"10", 1000},
		{"0", 0},
		{"1234567.89", 123456789},
	}
	for _, tc := range cases {
		got, err := money.ToCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestToCents_RejectsSubCentPrecision(t *testing.T) {
	_, err := money.ToCents("1.005")
	assert.ErrorIs(t, err, money.ErrNotRepresentable)

	_, err = money.ToCents("0.001")
	assert.ErrorIs(t, err, money.ErrNotRepresentable)
}

func TestToCents_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1,50", "R$10"} {
		_, err := money.ToCents(in)
		assert.Error(t, err, in)
	}
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "150.50", money.FromCents(15050))
	assert.Equal(t, "0.01", money.FromCents(1))
	assert.Equal(t, "0.00", money.FromCents(0))
	assert.Equal(t, "-20.00", money.FromCents(-2000))
}

func TestRoundTrip(t *testing.T) {
	// String -> cents -> string must be lossless for valid amounts.
	for _, in := range []string{"0.99", "100.00", "999999.01"} {
		cents, err := money.ToCents(in)
		require.NoError(t, err)
		assert.Equal(t, in, money.FromCents(cents))
	}
}
