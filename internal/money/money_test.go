package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, ok := range []string{"0", "12", "12.5", "12.50", " 7.01 "} {
		_, err := Parse(ok)
		assert.NoError(t, err, ok)
		assert.True(t, ValidAmount(ok), ok)
	}
	for _, bad := range []string{"", "-1", "1.234", ".5", "1e3", "abc", "1,000"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
		assert.False(t, ValidAmount(bad), bad)
	}
}

func TestArithmetic(t *testing.T) {
	a, err := Parse("0.10")
	require.NoError(t, err)
	b, err := Parse("0.20")
	require.NoError(t, err)
	assert.Equal(t, "0.30", a.Add(b).String())
	assert.Equal(t, "0.30", Sum(a, b).String())
	assert.Equal(t, "1.50", Cents(50).Mul(3).String())
	assert.True(t, a.Positive())
	assert.False(t, Zero.Positive())
	assert.True(t, New(-1).Negative())
}

func TestJSON(t *testing.T) {
	var v struct {
		Price Amount `json:"price"`
		Paid  Amount `json:"paid"`
		None  Amount `json:"none"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":12.5,"paid":"3.25","none":null}`), &v))
	assert.Equal(t, "12.50", v.Price.String())
	assert.Equal(t, "3.25", v.Paid.String())
	assert.True(t, v.None.IsZero())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.5,"paid":3.25,"none":0}`, string(data))
}
