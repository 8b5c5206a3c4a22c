// Package filter implements the shareable filter-chip model used by the task
// and brand list views: a query-string codec, a conjunction-of-disjunctions
// visibility predicate, and the URL<->state reconciliation loop.
package filter

// Key identifies a filter category. The set is closed: the five recognized
// keys plus an explicit unknown variant. Unknown chips survive codec
// round-trips for downstream consumers but never constrain the predicate.
type Key int

const (
	KeyUnknown Key = iota
	KeyStatus
	KeyPriority
	KeyTag
	KeyBrand
	KeyAssignee
)

// paramNames maps recognized keys to their wire names in the query string.
var paramNames = map[Key]string{
	KeyStatus:   "status",
	KeyPriority: "priority",
	KeyTag:      "tag",
	KeyBrand:    "brand",
	KeyAssignee: "assignee",
}

// ParseKey resolves a query-parameter name to its Key.
// Unrecognized names return KeyUnknown with ok=false.
func ParseKey(name string) (Key, bool) {
	for key, param := range paramNames {
		if param == name {
			return key, true
		}
	}
	return KeyUnknown, false
}

// String returns the wire name for recognized keys and "unknown" otherwise.
// Chips built from unrecognized parameters keep the literal name in Raw.
func (k Key) String() string {
	if name, ok := paramNames[k]; ok {
		return name
	}
	return "unknown"
}

// Chip is a single active filter constraint: a (key, value) pair.
//
// For tag, brand, and assignee chips the value is an opaque identifier; for
// status and priority it is the enumeration value as lowercase text. Chips
// sharing a key are OR-combined; chips across keys are AND-combined.
type Chip struct {
	Key   Key
	Raw   string // wire name; canonical for recognized keys, literal otherwise
	Value string
}

// NewChip builds a chip for a recognized key.
func NewChip(key Key, value string) Chip {
	return Chip{Key: key, Raw: key.String(), Value: value}
}

// chipFromParam builds a chip from a raw query parameter, preserving
// unrecognized names verbatim.
func chipFromParam(name, value string) Chip {
	key, ok := ParseKey(name)
	if !ok {
		return Chip{Key: KeyUnknown, Raw: name, Value: value}
	}
	return Chip{Key: key, Raw: name, Value: value}
}
