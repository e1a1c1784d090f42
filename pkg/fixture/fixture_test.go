package fixture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, VariantEmpty, Select("empty"))
	assert.Equal(t, VariantPlaintext, Select("plaintext"))
	assert.Equal(t, VariantFull, Select(""))
	assert.Equal(t, VariantFull, Select("body"))
	assert.Equal(t, VariantFull, Select("doesntexist"))
	// exact match only
	assert.Equal(t, VariantFull, Select("Empty"))
	assert.Equal(t, VariantFull, Select("plaintext "))
}

func TestObjectFixtureContent(t *testing.T) {
	t.Parallel()

	obj := Object()
	assert.Equal(t, "text1", obj["text"])
	assert.Equal(t, 123.546, obj["decimal"])
	assert.Equal(t, 42, obj["integer"])
	assert.Equal(t, true, obj["boolean"])
	assert.Equal(t, "2017-07-21T17:32:28Z", obj["datetime"])
	assert.Len(t, obj["collection"], 5)

	nested, ok := obj["object"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"key3": "value3"}, nested["key2"])
}

func TestFixturesAreDeepCopies(t *testing.T) {
	t.Parallel()

	obj := Object()
	obj["text"] = "mutated"
	nested := obj["object"].(map[string]any)
	nested["key1"] = "mutated"

	fresh := Object()
	assert.Equal(t, "text1", fresh["text"])
	assert.Equal(t, "value1", fresh["object"].(map[string]any)["key1"])

	arr := Array()
	arr[0] = "mutated"
	assert.Equal(t, "text1", Array()[0])
}

func TestFixtureIdempotence(t *testing.T) {
	t.Parallel()

	first, err := json.Marshal(ObjectOutputs(VariantFull))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(ObjectOutputs(VariantFull))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again), "fixture content must be byte-identical on every call")
	}
}

func TestObjectOutputs(t *testing.T) {
	t.Parallel()

	t.Run("full carries same value under both keys", func(t *testing.T) {
		t.Parallel()
		out := ObjectOutputs(VariantFull)
		assert.Equal(t, out["asObject"], out["asString"])
		assert.Equal(t, Object(), out["asObject"])
	})

	t.Run("empty is an empty mapping", func(t *testing.T) {
		t.Parallel()
		out := ObjectOutputs(VariantEmpty)
		assert.Equal(t, map[string]any{}, out["asObject"])
		assert.Equal(t, map[string]any{}, out["asString"])
	})
}

func TestArrayOutputs(t *testing.T) {
	t.Parallel()

	t.Run("full", func(t *testing.T) {
		t.Parallel()
		out := ArrayOutputs(VariantFull)
		assert.Equal(t, Array(), out["asArray"])
		assert.Equal(t, Array(), out["asString"])
	})

	t.Run("empty variant on array route is an empty mapping, not an empty sequence", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal(ArrayOutputs(VariantEmpty))
		require.NoError(t, err)
		assert.JSONEq(t, `{"asArray":{},"asString":{}}`, string(data))
	})
}

func TestAllTypesOutputs(t *testing.T) {
	t.Parallel()

	t.Run("copies present fields", func(t *testing.T) {
		t.Parallel()
		out := AllTypesOutputs(map[string]any{
			"textInput":     "abc",
			"decimalInput":  123.45,
			"integerInput":  float64(-789),
			"datetimeInput": "2017-07-21T17:32:28Z",
		})
		assert.Equal(t, "abc", out["textOutput"])
		assert.Equal(t, 123.45, out["decimalOutput"])
		assert.Equal(t, float64(-789), out["integerOutput"])
		assert.Equal(t, "2017-07-21T17:32:28Z", out["datetimeOutput"])
	})

	t.Run("absent fields are absent", func(t *testing.T) {
		t.Parallel()
		out := AllTypesOutputs(map[string]any{"textInput": "abc"})
		_, hasDecimal := out["decimalOutput"]
		assert.False(t, hasDecimal)
	})

	t.Run("null input stays null", func(t *testing.T) {
		t.Parallel()
		out := AllTypesOutputs(map[string]any{"textInput": nil})
		v, present := out["textOutput"]
		require.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("boolean type guard", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, true, AllTypesOutputs(map[string]any{"booleanInput": true})["booleanOutput"])
		assert.Equal(t, false, AllTypesOutputs(map[string]any{"booleanInput": false})["booleanOutput"])
		assert.Nil(t, AllTypesOutputs(map[string]any{"booleanInput": "true"})["booleanOutput"])
		assert.Nil(t, AllTypesOutputs(map[string]any{"booleanInput": nil})["booleanOutput"])
	})

	t.Run("collection type guard", func(t *testing.T) {
		t.Parallel()
		out := AllTypesOutputs(map[string]any{"collectionInput": []any{"abc", "def"}})
		assert.Equal(t, []any{"abc", "def"}, out["collectionOutput"])

		out = AllTypesOutputs(map[string]any{"collectionInput": []any{}})
		assert.Equal(t, []any{}, out["collectionOutput"])

		out = AllTypesOutputs(map[string]any{"collectionInput": "not-a-collection"})
		assert.Nil(t, out["collectionOutput"])
	})

	t.Run("nil inputs yields empty outputs", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, AllTypesOutputs(nil))
	})
}
