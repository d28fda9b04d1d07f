package extract_test

import (
	"testing"

	"github.com/law-makers/itemscrape/internal/extract"
	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmallPage(body string) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Apple/苹果 iPhone 15-tmall.com天猫</title></head>
<body>
<div id="root">` + body + `</div>
</body>
</html>`
}

func extractTmall(t *testing.T, raw string) *models.ItemRecord {
	t.Helper()

	doc, err := extract.NewDocument(raw)
	require.NoError(t, err)

	rec, err := extract.NewTmallExtractor().Extract(doc)
	require.NoError(t, err)
	return rec
}

func TestTmallExtractor_Scenario(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`
<div class="Price--root--1CrVGjc"><span class="Price--priceText--2nLbVda">88</span></div>
<div class="ItemHeader--root--DXhqHxP"><span class="ItemHeader--salesDesc--srlk2Hv">月销 120人付款</span></div>`)

	rec := extractTmall(t, raw)

	assert.Equal(t, models.PlatformTmall, rec.Platform)
	assert.Equal(t, models.PriceRange{Min: 88, Max: 88}, rec.PriceRange)
	assert.Equal(t, 120, rec.Sales)
	assert.Empty(t, rec.Variants)
	assert.NotNil(t, rec.Variants)
	assert.Equal(t, 0, rec.TotalStock)
	assert.Empty(t, rec.Attributes)
	assert.Equal(t, models.NoDeliveryInfo, rec.DeliveryInfo)
}

func TestTmallExtractor_Attributes(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`
<div class="ItemDetail--attrs--3t-mTb3">
	<span class="Attrs--attr--33ShB6X">品牌：Apple/苹果</span>
	<span class="Attrs--attr--33ShB6X"> 型号 ： iPhone 15 </span>
	<span class="Attrs--attr--33ShB6X">Color: ascii colon is not a separator here</span>
	<span class="Other--note--x">产地：ignored</span>
</div>
<span class="Attrs--attr--33ShB6X">外部：outside the container</span>`)

	rec := extractTmall(t, raw)

	assert.Equal(t, map[string]string{
		"品牌": "Apple/苹果",
		"型号": "iPhone 15",
	}, rec.Attributes)
}

func TestTmallExtractor_ClassPrefixMatching(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`
<span class="highlight Price--priceText--AAAA">66.6</span>
<span class="XPrice--priceText--BBBB">1.0</span>`)

	rec := extractTmall(t, raw)

	assert.Equal(t, models.PriceRange{Min: 66.6, Max: 66.6}, rec.PriceRange)
}

func TestTmallExtractor_DeliveryInfo(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`
<div class="delivery-info"><span>浙江杭州</span><span> 快递: 免运费 </span><span>48小时内发货</span></div>`)

	rec := extractTmall(t, raw)

	assert.Equal(t, "浙江杭州;快递: 免运费;48小时内发货", rec.DeliveryInfo)
}

func TestTmallExtractor_PriceFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want models.PriceRange
	}{
		{"missing", ``, models.PriceRange{}},
		{"currency sign", `<span class="Price--priceText--x">¥129.00</span>`, models.PriceRange{Min: 129, Max: 129}},
		{"unparseable", `<span class="Price--priceText--x">面议</span>`, models.PriceRange{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := extractTmall(t, tmallPage(tt.body))

			assert.Equal(t, tt.want, rec.PriceRange)
		})
	}
}

func TestTmallExtractor_Sales(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"dash", `<span class="ItemHeader--salesDesc--x">-</span>`, 0},
		{"empty", `<span class="ItemHeader--salesDesc--x"></span>`, 0},
		{"no digits", `<span class="ItemHeader--salesDesc--x">暂无销量</span>`, 0},
		{"first digit run", `<span class="ItemHeader--salesDesc--x">已售 300+ 件, 好评 99</span>`, 300},
		{"missing", ``, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := extractTmall(t, tmallPage(tt.body))

			assert.Equal(t, tt.want, rec.Sales)
		})
	}
}

func TestTmallExtractor_IgnoresEmbeddedSKUData(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`<script>
skuMap: {"tag1;": {"skuId":"S1","price":"19.9","stock":"5"}}
propertyMemoMap: {"tag1":"Red"}
</script>`)

	rec := extractTmall(t, raw)

	assert.Empty(t, rec.Variants)
	assert.Equal(t, 0, rec.TotalStock)
}
