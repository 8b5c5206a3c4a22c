package filter

import (
	"net/url"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairMultiset flattens chips into sorted "name=value" strings so equality
// checks ignore ordering.
func pairMultiset(chips []Chip) []string {
	pairs := make([]string, 0, len(chips))
	for _, chip := range chips {
		pairs = append(pairs, chip.Raw+"="+chip.Value)
	}
	sort.Strings(pairs)
	return pairs
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		chips []Chip
	}{
		{
			name:  "empty chip list",
			chips: nil,
		},
		{
			name: "single status chip",
			chips: []Chip{
				NewChip(KeyStatus, "todo"),
			},
		},
		{
			name: "repeated key with multiple values",
			chips: []Chip{
				NewChip(KeyStatus, "todo"),
				NewChip(KeyStatus, "done"),
			},
		},
		{
			name: "all five recognized keys",
			chips: []Chip{
				NewChip(KeyStatus, "in-progress"),
				NewChip(KeyPriority, "high"),
				NewChip(KeyTag, "b0b9c7e0-1111-4222-8333-444455556666"),
				NewChip(KeyBrand, "brand-1"),
				NewChip(KeyAssignee, "member-9"),
			},
		},
		{
			name: "duplicate pairs are preserved as a multiset",
			chips: []Chip{
				NewChip(KeyPriority, "urgent"),
				NewChip(KeyPriority, "urgent"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := Decode(Encode(tt.chips))
			assert.Equal(t, pairMultiset(tt.chips), pairMultiset(decoded))
		})
	}
}

func TestEncodeEmptyChipsYieldsEmptyQuery(t *testing.T) {
	assert.Empty(t, Encode(nil).Encode())
	assert.Empty(t, Encode([]Chip{}).Encode())
}

func TestDecodeEmptyQuery(t *testing.T) {
	assert.Empty(t, Decode(url.Values{}))
	assert.Empty(t, DecodeQuery(""))
}

func TestDecodeUnknownKeysPassThrough(t *testing.T) {
	values := url.Values{}
	values.Add("status", "todo")
	values.Add("utm_source", "newsletter")

	chips := Decode(values)
	require.Len(t, chips, 2)

	var unknown *Chip
	for i := range chips {
		if chips[i].Key == KeyUnknown {
			unknown = &chips[i]
		}
	}
	require.NotNil(t, unknown, "unrecognized key should become an unknown chip")
	assert.Equal(t, "utm_source", unknown.Raw)
	assert.Equal(t, "newsletter", unknown.Value)

	// Unknown chips survive a second round-trip too.
	again := Decode(Encode(chips))
	assert.Equal(t, pairMultiset(chips), pairMultiset(again))
}

func TestDecodeQueryMalformedInputNeverFails(t *testing.T) {
	// A stray "%" makes ParseQuery error; the partial result still decodes.
	chips := DecodeQuery("status=todo&bad=%zz")
	for _, chip := range chips {
		if chip.Key == KeyStatus {
			assert.Equal(t, "todo", chip.Value)
			return
		}
	}
	t.Fatal("expected the well-formed pair to survive a malformed sibling")
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		ok   bool
	}{
		{"status", KeyStatus, true},
		{"priority", KeyPriority, true},
		{"tag", KeyTag, true},
		{"brand", KeyBrand, true},
		{"assignee", KeyAssignee, true},
		{"statusline", KeyUnknown, false}, // prefix match is not enough
		{"", KeyUnknown, false},
	}

	for _, tt := range tests {
		key, ok := ParseKey(tt.name)
		assert.Equal(t, tt.key, key, tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
	}
}
