package utils

import (
	"net/url"
	"strconv"
)

// BuildPaginationURL returns baseURL with page and perPage set, carrying over
// every other query parameter.
func BuildPaginationURL(baseURL string, page, perPage int, params url.Values) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		u = &url.URL{Path: baseURL}
	}
	q := url.Values{}
	for key, values := range params {
		if key == "page" || key == "perPage" {
			continue
		}
		for _, value := range values {
			q.Add(key, value)
		}
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return u.String()
}

// LastPage returns the number of pages needed for total items, at least 1.
func LastPage(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
