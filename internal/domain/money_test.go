// internal/domain/money_test.go
package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-ledger/internal/util"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "two decimals", input: "100.50", want: "100.50"},
		{name: "integer", input: "42", want: "42.00"},
		{name: "one decimal", input: "0.5", want: "0.50"},
		{name: "trailing zero beyond scale", input: "1.500", want: "1.50"},
		{name: "negative", input: "-3.25", want: "-3.25"},
		{name: "largest", input: "9999999999.99", want: "9999999999.99"},
		{name: "too many decimals", input: "10.005", wantErr: true},
		{name: "too many integer digits", input: "10000000000.00", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, util.ErrInvalidAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestParseAmount(t *testing.T) {
	_, err := ParseAmount("0.00")
	assert.True(t, errors.Is(err, util.ErrInvalidAmount))

	_, err = ParseAmount("-1")
	assert.True(t, errors.Is(err, util.ErrInvalidAmount))

	m, err := ParseAmount("0.01")
	require.NoError(t, err)
	assert.True(t, m.IsPositive())
}

func TestMoney_Arithmetic(t *testing.T) {
	sum, err := MustMoney("0.10").Add(MustMoney("0.20"))
	require.NoError(t, err)
	assert.Equal(t, "0.30", sum.String())

	diff, err := MustMoney("500.00").Sub(MustMoney("150.00"))
	require.NoError(t, err)
	assert.Equal(t, "350.00", diff.String())

	_, err = MustMoney("9999999999.99").Add(MustMoney("0.01"))
	assert.True(t, errors.Is(err, util.ErrInvalidAmount))

	assert.True(t, MustMoney("1.00").Equal(MustMoney("1")))
	assert.True(t, MustMoney("1.00").LessThan(MustMoney("1.01")))
	assert.Equal(t, 1, MustMoney("2.00").Cmp(MustMoney("1.99")))
	assert.True(t, Money{}.IsZero())
	assert.Equal(t, "0.00", Money{}.String())
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshals as a fixed string", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Balance Money `json:"balance"`
		}{Balance: MustMoney("600.5")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"balance":"600.50"}`, string(out))
	})

	t.Run("accepts numbers and strings", func(t *testing.T) {
		var req struct {
			A Money `json:"a"`
			B Money `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a":100.5,"b":"7.25"}`), &req))
		assert.Equal(t, "100.50", req.A.String())
		assert.Equal(t, "7.25", req.B.String())
	})

	t.Run("rejects excess precision and null", func(t *testing.T) {
		var m Money
		assert.True(t, errors.Is(json.Unmarshal([]byte(`1.234`), &m), util.ErrInvalidAmount))
		assert.True(t, errors.Is(m.UnmarshalJSON([]byte(`null`)), util.ErrInvalidAmount))
		assert.True(t, errors.Is(json.Unmarshal([]byte(`"abc"`), &m), util.ErrInvalidAmount))
	})
}

func TestMoney_SQL(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("123.40")))
	assert.Equal(t, "123.40", m.String())

	require.NoError(t, m.Scan("0"))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan("1.001"))

	v, err := MustMoney("12.3").Value()
	require.NoError(t, err)
	assert.Equal(t, "12.30", v)
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.New(12345, -2))
	require.NoError(t, err)
	assert.Equal(t, "123.45", m.String())
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("123.45")))

	assert.Panics(t, func() { MustMoney("1.001") })
}
