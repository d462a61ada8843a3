package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawProperty_Key(t *testing.T) {
	tests := []struct {
		name string
		raw  RawProperty
		want string
	}{
		{"string id", RawProperty{"id": " abc "}, "abc"},
		{"float id", RawProperty{"id": float64(42)}, "42"},
		{"json number id", RawProperty{"id": json.Number("9007199254740993")}, "9007199254740993"},
		{"mongo id", RawProperty{"_id": "65f0"}, "65f0"},
		{"uuid", RawProperty{"uuid": "1b4e28ba"}, "1b4e28ba"},
		{"blank id falls through", RawProperty{"id": "", "uuid": "u"}, "u"},
		{"bool ignored", RawProperty{"id": true}, ""},
		{"missing", RawProperty{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Key())
		})
	}
}

func TestRawProperty_IsNormalized(t *testing.T) {
	assert.True(t, RawProperty{NormalizedMarker: true}.IsNormalized())
	assert.False(t, RawProperty{NormalizedMarker: "true"}.IsNormalized())
	assert.False(t, RawProperty{}.IsNormalized())
}

func TestDecodeRawProperties_KeepsNumbers(t *testing.T) {
	raws, err := DecodeRawProperties([]byte(`[{"id": 12345678901234567, "price": "1500"}, {"id": "b"}]`))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, json.Number("12345678901234567"), raws[0]["id"])
	assert.Equal(t, "12345678901234567", raws[0].Key())

	_, err = DecodeRawProperties([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDecodeRawProperty(t *testing.T) {
	raw, err := DecodeRawProperty([]byte(`{"id": 7, "bedrooms": 3}`))
	require.NoError(t, err)
	assert.Equal(t, "7", raw.Key())

	_, err = DecodeRawProperty([]byte(`[`))
	assert.Error(t, err)
}

func TestProperty_RawCarriesMarker(t *testing.T) {
	price := 1200.0
	p := Property{ID: "1", Title: "Flat", Price: &price, Images: []string{"a.jpg"}}

	raw := p.Raw()
	assert.True(t, raw.IsNormalized())
	assert.Equal(t, "1", raw.Key())
	assert.Equal(t, "Flat", raw["title"])
	assert.False(t, p.Normalized, "receiver is not modified")
}

func TestProperty_Price(t *testing.T) {
	assert.True(t, Property{}.PriceOnRequest())
	assert.Equal(t, 0.0, Property{}.PriceValue())

	price := 99.5
	assert.False(t, Property{Price: &price}.PriceOnRequest())
	assert.Equal(t, 99.5, Property{Price: &price}.PriceValue())
}
