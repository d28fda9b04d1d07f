package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Taobao page selectors
const (
	taobaoAttributesSelector = "ul.attributes-list li"
	taobaoDeliverySelector   = "#J_ServiceMarkInfo"
	taobaoPriceSelector      = "#J_StrPrice em.tb-rmb-num"
	taobaoStockSelector      = "#J_SpanStock"
	taobaoSalesSelector      = "#J_SellCounter"
)

// TaobaoExtractor extracts classic Taobao item pages. Variant data comes
// from the skuMap and propertyMemoMap literals embedded in inline scripts.
type TaobaoExtractor struct {
	decoder Decoder
}

// NewTaobaoExtractor creates a TaobaoExtractor using decoder for embedded data
func NewTaobaoExtractor(decoder Decoder) *TaobaoExtractor {
	return &TaobaoExtractor{decoder: decoder}
}

// Platform returns models.PlatformTaobao
func (e *TaobaoExtractor) Platform() models.Platform {
	return models.PlatformTaobao
}

// Extract builds the record. Only a missing title fails the call; every
// other field falls back to its sentinel.
func (e *TaobaoExtractor) Extract(doc *Document) (*models.ItemRecord, error) {
	title, err := doc.Title()
	if err != nil {
		return nil, err
	}

	variants := e.extractVariants(doc)

	rec := &models.ItemRecord{
		Platform:     models.PlatformTaobao,
		Title:        title,
		Attributes:   e.extractAttributes(doc),
		DeliveryInfo: e.extractDeliveryInfo(doc),
		Variants:     variants,
		Sales:        e.extractSales(doc),
	}

	if pr, stock, ok := models.AggregateVariants(variants); ok {
		rec.PriceRange = pr
		rec.TotalStock = stock
	} else {
		rec.PriceRange = e.extractPriceRange(doc)
		rec.TotalStock = e.extractTotalStock(doc)
	}

	log.Debug().
		Str("platform", string(rec.Platform)).
		Int("variants", len(rec.Variants)).
		Int("attributes", len(rec.Attributes)).
		Msg("Taobao page extracted")

	return rec, nil
}

func (e *TaobaoExtractor) extractAttributes(doc *Document) map[string]string {
	attrs := make(map[string]string)
	doc.Find(taobaoAttributesSelector).Each(func(i int, s *goquery.Selection) {
		label, value, ok := strings.Cut(s.Text(), ":")
		if !ok {
			log.Debug().Str("entry", strings.TrimSpace(s.Text())).Msg("Skipping attribute without colon")
			return
		}
		attrs[strings.TrimSpace(label)] = strings.TrimSpace(value)
	})
	return attrs
}

func (e *TaobaoExtractor) extractDeliveryInfo(doc *Document) string {
	sel := doc.Find(taobaoDeliverySelector).First()
	if sel.Length() == 0 {
		return models.NoDeliveryInfo
	}
	return strings.TrimSpace(sel.Text())
}

func (e *TaobaoExtractor) extractVariants(doc *Document) []models.VariantRecord {
	skus, labels := e.decoder.Decode(doc.Raw())

	variants := make([]models.VariantRecord, 0, len(skus))
	for _, entry := range skus {
		tags := splitOptionTags(entry.Key)
		v := models.VariantRecord{
			OptionTags: tags,
			OptionName: resolveOptionName(tags, labels),
			SKUID:      models.Unknown,
			Price:      models.NoPrice,
			Stock:      models.NoStock,
		}

		if id, ok := coerceString(entry.Fields["skuId"]); ok {
			v.SKUID = id
		}
		if price, ok := coerceFloat(entry.Fields["price"]); ok {
			v.Price = price
		}
		if stock, ok := coerceInt(entry.Fields["stock"]); ok {
			v.Stock = stock
		}
		v.Oversold = coerceBool(entry.Fields["oversold"])

		variants = append(variants, v)
	}
	return variants
}

// splitOptionTags turns ";1627207:28341;20509:28314;" into its tags
func splitOptionTags(key string) []string {
	tags := []string{}
	for _, tag := range strings.Split(key, ";") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// resolveOptionName returns the label of the first tag, in sequence order,
// that the label map knows about.
func resolveOptionName(tags []string, labels LabelMap) string {
	for _, tag := range tags {
		if v, ok := labels[tag]; ok {
			if name, ok := labelText(v); ok {
				return name
			}
		}
	}
	return models.Unknown
}

// extractPriceRange reads the summary widget, which shows "low-high" or a single price
func (e *TaobaoExtractor) extractPriceRange(doc *Document) models.PriceRange {
	sel := doc.Find(taobaoPriceSelector).First()
	if sel.Length() == 0 {
		return models.PriceRange{}
	}

	var prices []float64
	for _, part := range strings.Split(sel.Text(), "-") {
		p, ok := parseFloatText(part)
		if !ok || p < 0 {
			log.Debug().Str("text", sel.Text()).Msg("Unparseable price widget")
			return models.PriceRange{}
		}
		prices = append(prices, p)
	}

	pr := models.PriceRange{Min: prices[0], Max: prices[0]}
	for _, p := range prices[1:] {
		pr.Min = min(pr.Min, p)
		pr.Max = max(pr.Max, p)
	}
	return pr
}

func (e *TaobaoExtractor) extractTotalStock(doc *Document) int {
	sel := doc.Find(taobaoStockSelector).First()
	if sel.Length() == 0 {
		return 0
	}
	stock, ok := parseIntText(sel.Text())
	if !ok || stock < 0 {
		return 0
	}
	return stock
}

func (e *TaobaoExtractor) extractSales(doc *Document) int {
	sel := doc.Find(taobaoSalesSelector).First()
	if sel.Length() == 0 {
		return 0
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" || text == models.PlaceholderDash {
		return 0
	}
	sales, ok := parseIntText(text)
	if !ok || sales < 0 {
		return 0
	}
	return sales
}
