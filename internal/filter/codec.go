package filter

import (
	"net/url"
	"sort"
)

// Encode converts a chip list to URL query parameters. Repeated keys carry
// multiple values under the same name. An empty chip list encodes to an
// empty value set.
func Encode(chips []Chip) url.Values {
	values := url.Values{}
	for _, chip := range chips {
		values.Add(chip.Raw, chip.Value)
	}
	return values
}

// Decode converts URL query parameters back to chips: every name=value pair
// present becomes one chip. Unrecognized names pass through as unknown chips
// so downstream consumers can still see them.
//
// Output order is deterministic (names sorted, values in wire order) but not
// guaranteed to match any previous Encode input order; only the multiset of
// (key, value) pairs round-trips.
func Decode(values url.Values) []Chip {
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var chips []Chip
	for _, name := range names {
		for _, value := range values[name] {
			chips = append(chips, chipFromParam(name, value))
		}
	}
	return chips
}

// DecodeQuery parses a raw query string and decodes it. Malformed input never
// fails: url.ParseQuery's partial result is used and the error discarded,
// since a bad parameter should degrade to a weaker filter, not an exception.
func DecodeQuery(rawQuery string) []Chip {
	values, err := url.ParseQuery(rawQuery)
	if err != nil && len(values) == 0 {
		return nil
	}
	return Decode(values)
}
