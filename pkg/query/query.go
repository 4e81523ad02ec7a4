// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"net/url"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Values collects every value of key, accepting both repeated parameters
// (?tags=a&tags=b) and comma lists (?tags=a,b). Duplicates are dropped and
// first-seen order is kept.
func Values(values url.Values, key string) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, raw := range values[key] {
		for _, v := range StringSlice(raw) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			res = append(res, v)
		}
	}
	return res
}
