package transformers

import (
	"encoding/json"
	"sort"
	"strings"

	"marketplace-listings/internal/models"

	"golang.org/x/text/language"
)

// fallbackChain is tried after the requested language.
var fallbackChain = []models.Language{models.LangEnglish, models.LangArabic, models.LangKurdish}

// localeChain returns the resolution order for lang: lang itself, then
// English, Arabic, Kurdish, without repeats.
func localeChain(lang models.Language) []models.Language {
	chain := make([]models.Language, 0, len(fallbackChain)+1)
	if lang != "" {
		chain = append(chain, lang)
	}
	for _, l := range fallbackChain {
		if l != lang {
			chain = append(chain, l)
		}
	}
	return chain
}

// resolveLocalized picks a display string out of a string or a localized
// bundle such as {"name_ar": "...", "name_en": "..."}.
func resolveLocalized(v interface{}, lang models.Language) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(val)
		if strings.HasPrefix(s, "{") {
			var bundle map[string]interface{}
			if err := json.Unmarshal([]byte(s), &bundle); err == nil {
				return resolveLocalized(bundle, lang)
			}
		}
		return s
	case json.Number:
		return val.String()
	}

	bundle, ok := asMap(v)
	if !ok {
		return ""
	}
	for _, l := range localeChain(lang) {
		for _, key := range []string{"name_" + string(l), string(l), "title_" + string(l)} {
			if s, ok := bundle[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	keys := make([]string, 0, len(bundle))
	for k := range bundle {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := bundle[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// getLocalized resolves the first present path through resolveLocalized.
func getLocalized(m map[string]interface{}, lang models.Language, keys ...string) string {
	for _, key := range keys {
		if val, ok := getValue(m, key); ok {
			if s := resolveLocalized(val, lang); s != "" {
				return s
			}
		}
	}
	return ""
}

// ParseLanguage maps a language tag ("en-US", "ar", "ckb") to a supported
// UI language.
func ParseLanguage(tag string) (models.Language, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	return languageFromTag(t)
}

// LanguageFromAcceptLanguage picks the highest-weighted supported language
// from an Accept-Language header, or fallback when none matches.
func LanguageFromAcceptLanguage(header string, fallback models.Language) models.Language {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return fallback
	}
	for _, t := range tags {
		if lang, ok := languageFromTag(t); ok {
			return lang
		}
	}
	return fallback
}

func languageFromTag(t language.Tag) (models.Language, bool) {
	base, _ := t.Base()
	switch base.String() {
	case "en":
		return models.LangEnglish, true
	case "ar":
		return models.LangArabic, true
	case "ku", "ckb", "kmr", "sdh":
		return models.LangKurdish, true
	}
	return "", false
}
