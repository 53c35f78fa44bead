package fixedpoint

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {
	assert.Equal(t, int64(33), MulDiv(math.NewInt(10), math.NewInt(10), math.NewInt(3)).Int64())
	assert.True(t, MulDiv(math.NewInt(10), math.NewInt(10), math.ZeroInt()).IsZero())
}

func TestBpsMul(t *testing.T) {
	// 2.5% of 1 token in micro units
	assert.Equal(t, int64(25_000), BpsMul(math.NewInt(1_000_000), 250).Int64())
	assert.True(t, BpsMul(math.NewInt(1), 0).IsZero())
	// floor, never round up
	assert.Equal(t, int64(0), BpsMul(math.NewInt(39), 250).Int64())
}

func TestBpsMulCeil(t *testing.T) {
	// exact multiples stay exact
	assert.Equal(t, int64(25_000), BpsMulCeil(math.NewInt(1_000_000), 250).Int64())
	// any remainder rounds up
	assert.Equal(t, int64(1), BpsMulCeil(math.NewInt(39), 250).Int64())
	assert.True(t, BpsMulCeil(math.NewInt(1), 0).IsZero())
}

func TestRatioBps(t *testing.T) {
	assert.Equal(t, int64(5_000), RatioBps(math.NewInt(50), math.NewInt(100)).Int64())
	assert.True(t, RatioBps(math.NewInt(50), math.ZeroInt()).IsZero())
}

func TestMicroUSD(t *testing.T) {
	// 2 tokens at 1.50 USD
	v := MicroUSD(math.NewInt(2_000_000), math.NewInt(1_500_000))
	assert.Equal(t, int64(3_000_000), v.Int64())
}

func TestAmountScan(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan("123456789012345678901234567890"))
	assert.Equal(t, "123456789012345678901234567890", a.String())

	require.NoError(t, a.Scan([]byte("42")))
	assert.Equal(t, int64(42), a.Int64())

	require.NoError(t, a.Scan(nil))
	assert.True(t, a.IsZero())

	require.Error(t, a.Scan("not-a-number"))
}

func TestAmountValue(t *testing.T) {
	v, err := Amount{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	v, err = NewAmount(math.NewInt(7)).Value()
	require.NoError(t, err)
	assert.Equal(t, "7", v)
}
