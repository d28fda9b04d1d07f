package extract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptPage(skuLine, memoLine string) string {
	return `<html><head><title>item</title></head><body>
<script>
var Hub = {};
Hub.config.set('sku', {
    valItemInfo      : {
        skuMap     : ` + skuLine + `
        ,propertyMemoMap: ` + memoLine + `
    }
});
</script>
</body></html>`
}

func TestDecode_StrictJSON(t *testing.T) {
	t.Parallel()

	raw := scriptPage(
		`{";20509:28315;1627207:28320;":{"skuId":"S2","price":"20.00","stock":"3"},";20509:28314;":{"skuId":"S1","price":"19.00","stock":"0"}}`,
		`{"1627207:28320":"Black","20509:28314":"M"}`,
	)

	skus, labels := Decode(raw)

	require.Len(t, skus, 2)
	assert.Equal(t, ";20509:28315;1627207:28320;", skus[0].Key, "source order is kept")
	assert.Equal(t, ";20509:28314;", skus[1].Key)
	assert.Equal(t, "S2", skus[0].Fields["skuId"])
	assert.Equal(t, "Black", labels["1627207:28320"])
}

func TestDecode_NumbersKeepPrecision(t *testing.T) {
	t.Parallel()

	raw := scriptPage(`{"t;":{"skuId":1234567890123456789,"price":19.9}}`, `{}`)

	skus, _ := Decode(raw)

	require.Len(t, skus, 1)
	assert.Equal(t, json.Number("1234567890123456789"), skus[0].Fields["skuId"])
}

func TestDecode_SoftFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no markers",
			raw:  `<html><head><title>x</title></head><body><p>no scripts</p></body></html>`,
		},
		{
			name: "only skuMap",
			raw:  `<script>skuMap: {"a;":{"price":"1"}}</script>`,
		},
		{
			name: "malformed skuMap",
			raw:  scriptPage(`{"a;": {"skuId":`, `{"a":"Red"}`),
		},
		{
			name: "malformed propertyMemoMap",
			raw:  scriptPage(`{"a;":{"price":"1"}}`, `{"a":`),
		},
		{
			name: "skuMap is an array",
			raw:  scriptPage(`[1,2,3]`, `{"a":"Red"}`),
		},
		{
			name: "propertyMemoMap is a string",
			raw:  scriptPage(`{"a;":{"price":"1"}}`, `"Red"`),
		},
		{
			name: "trailing comma is not JSON",
			raw:  scriptPage(`{"a;":{"price":"1"}},`, `{"a":"Red"}`),
		},
		{
			name: "unquoted keys are not JSON",
			raw:  scriptPage(`{a: {price: "1"}}`, `{a: "Red"}`),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			skus, labels := Decode(tt.raw)

			assert.Empty(t, skus)
			assert.Empty(t, labels)
			assert.NotNil(t, skus)
			assert.NotNil(t, labels)
		})
	}
}

func TestDecode_FirstMarkerWins(t *testing.T) {
	t.Parallel()

	raw := `<script>
skuMap: {"first;":{"price":"1"}}
propertyMemoMap: {"first":"One"}
skuMap: {"second;":{"price":"2"}}
</script>`

	skus, labels := Decode(raw)

	require.Len(t, skus, 1)
	assert.Equal(t, "first;", skus[0].Key)
	assert.Equal(t, "One", labels["first"])
}

func TestDecode_RepeatedKeyKeepsLastValue(t *testing.T) {
	t.Parallel()

	raw := scriptPage(`{"a;":{"price":"1"},"b;":{"price":"2"},"a;":{"price":"3"}}`, `{}`)

	skus, _ := Decode(raw)

	require.Len(t, skus, 2)
	assert.Equal(t, "a;", skus[0].Key)
	assert.Equal(t, "3", skus[0].Fields["price"])
}

func TestDecode_NonObjectEntryHasNilFields(t *testing.T) {
	t.Parallel()

	raw := scriptPage(`{"a;":"oops"}`, `{}`)

	skus, _ := Decode(raw)

	require.Len(t, skus, 1)
	assert.Nil(t, skus[0].Fields)
}

func TestDecoder_Lenient(t *testing.T) {
	t.Parallel()

	d := Decoder{Lenient: true}

	t.Run("trailing comma", func(t *testing.T) {
		t.Parallel()

		skus, labels := d.Decode(scriptPage(`{"a;":{"skuId":"S1","price":"1.5"}},`, `{"a":"Red"},`))

		require.Len(t, skus, 1)
		assert.Equal(t, "S1", skus[0].Fields["skuId"])
		assert.Equal(t, "Red", labels["a"])
	})

	t.Run("unquoted keys and single quotes", func(t *testing.T) {
		t.Parallel()

		skus, labels := d.Decode(scriptPage(`{'a;': {skuId: 'S1', price: 1.5, stock: 2}}`, `{a: 'Red'}`))

		require.Len(t, skus, 1)
		assert.Equal(t, json.Number("1.5"), skus[0].Fields["price"])
		assert.Equal(t, "Red", labels["a"])
	})

	t.Run("still soft-fails on garbage", func(t *testing.T) {
		t.Parallel()

		skus, labels := d.Decode(scriptPage(`{"a;": {"skuId":`, `{"a":"Red"}`))

		assert.Empty(t, skus)
		assert.Empty(t, labels)
	})

	t.Run("interrupts long running fragments", func(t *testing.T) {
		t.Parallel()

		slow := Decoder{Lenient: true, EvalTimeout: 10 * time.Millisecond}
		start := time.Now()

		skus, labels := slow.Decode(scriptPage(`(function(){while(true){}})()`, `{"a":"Red"}`))

		assert.Empty(t, skus)
		assert.Empty(t, labels)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
