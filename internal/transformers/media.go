package transformers

import (
	"strings"
)

var mediaURLKeys = []string{"url", "original_url", "originalUrl", "path", "src"}

// resolveImages returns the main image and the ordered, deduplicated image
// list. Priority for the main image: explicit main image field, first media
// entry, first legacy image, placeholder. The placeholder never enters the
// images list.
func resolveImages(raw map[string]interface{}, placeholder string) (string, []string) {
	gallery := append(mediaURLs(firstValue(raw, "media")), mediaURLs(firstValue(raw, "images", "gallery"))...)

	main := mediaURL(firstValue(raw, "main_image", "mainImage", "main_image_url"))
	if main == "" && len(gallery) > 0 {
		main = gallery[0]
	}

	images := dedupe(append([]string{main}, gallery...))
	if main == "" {
		main = placeholder
	}
	return main, images
}

func mediaURLs(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		if strs, isStrings := v.([]string); isStrings {
			list = make([]interface{}, len(strs))
			for i, s := range strs {
				list[i] = s
			}
		} else {
			return nil
		}
	}
	urls := make([]string, 0, len(list))
	for _, item := range list {
		if u := mediaURL(item); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// mediaURL reads a URL from a plain string or a media object.
func mediaURL(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	obj, ok := asMap(v)
	if !ok {
		return ""
	}
	for _, key := range mediaURLKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
