// Package fixture provides the hardcoded, deterministic payloads used for
// client-side contract testing. The fixture set is defined once and every
// accessor returns a fresh deep copy, so no caller can mutate what a later
// request observes.
package fixture

// Plaintext is the literal body returned for expected=plaintext.
const Plaintext = "this is a plaintext"

// Variant selects one of the fixture response behaviors.
type Variant int

const (
	// VariantFull returns the complete fixture set. This is the behavior
	// for an absent, empty, or unrecognized discriminator.
	VariantFull Variant = iota

	// VariantEmpty returns an empty mapping under both keys. This applies
	// on the array route too: the contract is an empty JSON object, not an
	// empty array.
	VariantEmpty

	// VariantPlaintext bypasses the JSON envelope entirely.
	VariantPlaintext
)

// Select maps the `expected` query discriminator to a Variant by exact match.
func Select(expected string) Variant {
	switch expected {
	case "empty":
		return VariantEmpty
	case "plaintext":
		return VariantPlaintext
	default:
		return VariantFull
	}
}

// Object returns the fixture set in object form: one example of each
// supported scalar and composite type.
func Object() map[string]any {
	return map[string]any{
		"text":       "text1",
		"decimal":    123.546,
		"integer":    42,
		"boolean":    true,
		"datetime":   "2017-07-21T17:32:28Z",
		"collection": []any{"text2", -543.21, 24, true, "2020-12-31T17:56:57Z"},
		"object": map[string]any{
			"key1": "value1",
			"key2": map[string]any{"key3": "value3"},
		},
	}
}

// Array returns the fixture set in heterogeneous array form.
func Array() []any {
	return []any{
		"text1",
		123.546,
		42,
		true,
		"2017-07-21T17:32:28Z",
		map[string]any{
			"key1": "value1",
			"key2": map[string]any{"key3": "value3"},
		},
	}
}

// ObjectOutputs builds the outputs.object value for the object route.
// The asString key carries the same structured value as asObject; the name
// is a historical quirk of the contract and is preserved for compatibility.
func ObjectOutputs(v Variant) map[string]any {
	if v == VariantEmpty {
		return map[string]any{
			"asObject": map[string]any{},
			"asString": map[string]any{},
		}
	}
	return map[string]any{
		"asObject": Object(),
		"asString": Object(),
	}
}

// ArrayOutputs builds the outputs.object value for the array route.
// For the empty variant both keys hold an empty mapping, not an empty
// sequence; clients depend on this exact shape.
func ArrayOutputs(v Variant) map[string]any {
	if v == VariantEmpty {
		return map[string]any{
			"asArray":  map[string]any{},
			"asString": map[string]any{},
		}
	}
	return map[string]any{
		"asArray":  Array(),
		"asString": Array(),
	}
}
