package handler

import (
	"encoding/base64"
	"net/url"
	"strconv"
)

// generatePageToken creates a pagination token from an offset value.
// Returns empty if there are no more pages.
func generatePageToken(offset int, hasMore bool) string {
	if !hasMore {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// parsePageToken decodes a pagination token to get the offset.
// Returns 0 if the token is empty or invalid.
func parsePageToken(token string) int {
	if token == "" {
		return 0
	}

	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}

	offset, err := strconv.Atoi(string(decoded))
	if err != nil || offset < 0 {
		return 0
	}

	return offset
}

// cloneValues copies query values so callers can strip parameters without
// mutating the request.
func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for name, vs := range values {
		out[name] = append([]string(nil), vs...)
	}
	return out
}

// parsePageSize reads the page_size query parameter. Zero means "use the
// service default"; clamping happens in the service layer.
func parsePageSize(query url.Values) int {
	raw := query.Get("page_size")
	if raw == "" {
		return 0
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return size
}
