// Package models defines the canonical product record produced by the extractors.
//
// Several fields use sentinel values instead of absence. Consumers must not
// confuse them with observed values:
//
//	VariantRecord.OptionName  "unknown" when no option tag resolves to a label
//	VariantRecord.SKUID       "unknown" when the SKU id is missing
//	VariantRecord.Price       -1 when the price is missing or unparseable
//	VariantRecord.Stock       -1 when the stock is missing or unparseable
//	ItemRecord.DeliveryInfo   "-" when the page shows no delivery element
//	ItemRecord.PriceRange     {0, 0} when no price signal exists on the page
//	ItemRecord.TotalStock     0 when no stock signal exists on the page
//	ItemRecord.Sales          0 when the counter is empty or a placeholder dash
package models

// Sentinel values used by the record model
const (
	Unknown         = "unknown"
	NoDeliveryInfo  = "-"
	NoPrice         = -1.0
	NoStock         = -1
	PlaceholderDash = "-"
)

// Platform identifies which page template produced a record
type Platform string

const (
	// PlatformTaobao is the classic Taobao item page template
	PlatformTaobao Platform = "taobao"
	// PlatformTmall is the Tmall item page template
	PlatformTmall Platform = "tmall"
)

// Valid reports whether p is a known platform
func (p Platform) Valid() bool {
	return p == PlatformTaobao || p == PlatformTmall
}

// VariantRecord is one purchasable SKU of an item
type VariantRecord struct {
	OptionTags []string `json:"option_tags" yaml:"option_tags"`
	OptionName string   `json:"option_name" yaml:"option_name"`
	SKUID      string   `json:"sku_id" yaml:"sku_id"`
	Price      float64  `json:"price" yaml:"price"`
	Stock      int      `json:"stock" yaml:"stock"`
	Oversold   bool     `json:"oversold" yaml:"oversold"`
}

// PriceRange is the lowest and highest price of an item
type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// ItemRecord is the canonical data of one product page
type ItemRecord struct {
	Platform     Platform          `json:"platform" yaml:"platform"`
	Title        string            `json:"title" yaml:"title"`
	Attributes   map[string]string `json:"attributes" yaml:"attributes"`
	DeliveryInfo string            `json:"delivery_info" yaml:"delivery_info"`
	Variants     []VariantRecord   `json:"variants" yaml:"variants"`
	PriceRange   PriceRange        `json:"price_range" yaml:"price_range"`
	TotalStock   int               `json:"total_stock" yaml:"total_stock"`
	Sales        int               `json:"sales" yaml:"sales"`
}

// AggregateVariants derives the price range and total stock from variants.
// Variants carrying the price or stock sentinel are left out of the
// respective aggregate, so the result is never negative. ok is false when
// variants is empty.
func AggregateVariants(variants []VariantRecord) (pr PriceRange, totalStock int, ok bool) {
	if len(variants) == 0 {
		return PriceRange{}, 0, false
	}

	priced := false
	for _, v := range variants {
		if v.Price >= 0 {
			if !priced {
				pr = PriceRange{Min: v.Price, Max: v.Price}
				priced = true
			} else {
				pr.Min = min(pr.Min, v.Price)
				pr.Max = max(pr.Max, v.Price)
			}
		}
		if v.Stock >= 0 {
			totalStock += v.Stock
		}
	}

	return pr, totalStock, true
}
