package transformers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// displayPrice is one number with optional thousands groups, optionally
// preceded or followed by a currency symbol or a three-letter code.
var displayPrice = regexp.MustCompile(`^(?:\p{Sc}|[A-Z]{3})?\s*(-?\d{1,3}(?:[, \x{00a0}]\d{3})+(?:\.\d+)?|-?\d+(?:\.\d+)?)\s*(?:\p{Sc}|[A-Z]{3})?$`)

// priceObjectKeys is the lookup order inside an object-valued price.
var priceObjectKeys = []string{"amount", "price", "formatted"}

// resolvePrice turns any of the price shapes into an amount. A nil result
// is the "price on request" state; zero, negative and unparseable inputs all
// end up there.
func resolvePrice(v interface{}) (*float64, string) {
	switch p := v.(type) {
	case nil:
		return nil, ""
	case string:
		return resolvePriceString(p)
	case map[string]interface{}:
		return resolvePriceObject(p)
	default:
		f, ok := toFloat(p)
		return positive(f, ok), ""
	}
}

func resolvePriceString(s string) (*float64, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ""
	}
	if strings.HasPrefix(s, "{") {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			return resolvePriceObject(obj)
		}
	}
	f, ok := parseNumeric(s)
	return positive(f, ok), ""
}

func resolvePriceObject(obj map[string]interface{}) (*float64, string) {
	currency, _ := obj["currency"].(string)
	for _, key := range priceObjectKeys {
		val, ok := obj[key]
		if !ok || val == nil {
			continue
		}
		if amount, _ := resolvePrice(val); amount != nil {
			return amount, strings.TrimSpace(currency)
		}
	}
	return nil, strings.TrimSpace(currency)
}

// parseNumeric reads a display string such as "$1,500" or "1 500 USD".
// Any other text around the number makes the string unparseable.
func parseNumeric(s string) (float64, bool) {
	m := displayPrice.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, m[1])
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return toFloat(f)
}

func positive(f float64, ok bool) *float64 {
	if !ok || f <= 0 {
		return nil
	}
	return &f
}
