package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "220.00", want: 22000},
		{in: "45", want: 4500},
		{in: "45.5", want: 4550},
		{in: "0.05", want: 5},
		{in: ".50", want: 50},
		{in: "-12.34", want: -1234},
		{in: "+7", want: 700},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "12,50", wantErr: true},
		{in: ".", wantErr: true},
		{in: "1.-5", wantErr: true},
		{in: "1.+5", wantErr: true},
		{in: "2.-0", wantErr: true},
		{in: "-1.-5", wantErr: true},
		{in: "1.a5", wantErr: true},
		{in: "1e2", wantErr: true},
		{in: "92233720368547758.08", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "220.00", FromCents(22000).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "-12.34", FromCents(-1234).String())
	assert.Equal(t, "0.00", Zero.String())
}

func TestArithmetic(t *testing.T) {
	croissant := FromCents(4500)
	latte := FromCents(13000)

	double, err := croissant.MulInt(2)
	require.NoError(t, err)
	single, err := latte.MulInt(1)
	require.NoError(t, err)

	total := double.Add(single)
	assert.Equal(t, "220.00", total.String())
	assert.True(t, total.IsPositive())
	assert.False(t, Zero.IsPositive())
}

func TestMulIntOutOfRange(t *testing.T) {
	_, err := FromCents(math.MaxInt64).MulInt(2)
	assert.Error(t, err)

	_, err = FromCents(math.MaxInt64/2 + 1).MulInt(2)
	assert.Error(t, err)

	_, err = FromCents(math.MinInt64).MulInt(-1)
	assert.Error(t, err)

	got, err := FromCents(math.MaxInt64).MulInt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Cents())

	got, err = FromCents(math.MaxInt64).MulInt(0)
	require.NoError(t, err)
	assert.Equal(t, Zero, got)
}

func TestJSON(t *testing.T) {
	raw, err := json.Marshal(FromCents(22000))
	require.NoError(t, err)
	assert.Equal(t, `"220.00"`, string(raw))

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"130.00"`), &fromString))
	assert.Equal(t, int64(13000), fromString.Cents())

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`45.5`), &fromNumber))
	assert.Equal(t, int64(4550), fromNumber.Cents())

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"1.999"`), &bad))
}

func TestScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("220.00")))
	assert.Equal(t, int64(22000), m.Cents())

	require.NoError(t, m.Scan("45.00"))
	assert.Equal(t, int64(4500), m.Cents())

	require.NoError(t, m.Scan(int64(7)))
	assert.Equal(t, int64(700), m.Cents())

	require.NoError(t, m.Scan(float64(130)))
	assert.Equal(t, int64(13000), m.Cents())

	assert.Error(t, m.Scan(true))
}

func TestValue(t *testing.T) {
	v, err := FromCents(4550).Value()
	require.NoError(t, err)
	assert.Equal(t, "45.50", v)
}
