package utils

import (
	"net/url"
	"strconv"
)

// QueryInt safely parses an integer from query parameters.
// If missing or invalid, returns the provided default.
func QueryInt(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Page reads limit/offset with the given default page size.
func Page(q url.Values, defLimit int) (limit, offset int) {
	return QueryInt(q, "limit", defLimit), QueryInt(q, "offset", 0)
}
