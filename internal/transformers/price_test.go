package transformers

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		onReq bool
	}{
		{"numeric string", "1500", 1500, false},
		{"float", float64(2500.5), 2500.5, false},
		{"int", 300, 300, false},
		{"json number", json.Number("4200"), 4200, false},
		{"amount object", map[string]interface{}{"amount": float64(2000)}, 2000, false},
		{"price object", map[string]interface{}{"price": "750"}, 750, false},
		{"formatted object", map[string]interface{}{"formatted": "$1,250"}, 1250, false},
		{"amount wins over formatted", map[string]interface{}{"amount": float64(10), "formatted": "$99"}, 10, false},
		{"zero amount falls through", map[string]interface{}{"amount": float64(0), "price": float64(5)}, 5, false},
		{"json encoded object", `{"amount": 3000, "currency": "IQD"}`, 3000, false},
		{"display string", "1,500,000 IQD", 1500000, false},
		{"currency prefix", "$ 99.99", 99.99, false},
		{"space grouped with code", "1 500 USD", 1500, false},
		{"code prefix", "IQD 250,000", 250000, false},
		{"nil", nil, 0, true},
		{"empty object", map[string]interface{}{}, 0, true},
		{"empty string", "   ", 0, true},
		{"zero", float64(0), 0, true},
		{"negative", float64(-5), 0, true},
		{"nan", math.NaN(), 0, true},
		{"inf", math.Inf(1), 0, true},
		{"text", "price on request", 0, true},
		{"phone number text", "Call 0770 123 4567", 0, true},
		{"letters before digits", "abc123", 0, true},
		{"two numbers", "1500 2000", 0, true},
		{"bad grouping", "1,50,000", 0, true},
		{"broken json", `{"amount": }`, 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := resolvePrice(tt.input)
			if tt.onReq {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestResolvePrice_Currency(t *testing.T) {
	_, currency := resolvePrice(`{"amount": 3000, "currency": "IQD"}`)
	assert.Equal(t, "IQD", currency)

	_, currency = resolvePrice(float64(10))
	assert.Equal(t, "", currency)
}
