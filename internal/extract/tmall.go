package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Tmall build tooling appends random suffixes to its CSS module class names
// ("Price--priceText--2nLbVda"), so these match a single class by prefix.
var (
	RxItemDetailAttrs     = regexp.MustCompile(`^ItemDetail--attrs--`)
	RxAttrsAttr           = regexp.MustCompile(`^Attrs--attr--`)
	RxPriceText           = regexp.MustCompile(`^Price--priceText--`)
	RxItemHeaderSalesDesc = regexp.MustCompile(`^ItemHeader--salesDesc--`)
)

const (
	tmallDeliverySelector = "div.delivery-info"

	// fullWidthColon separates label and value in Tmall attribute spans
	fullWidthColon = "："
)

var rxDigits = regexp.MustCompile(`\d+`)

// TmallExtractor extracts Tmall item pages. The template exposes no
// machine-readable SKU data and no stock, and shows a single price.
type TmallExtractor struct{}

// NewTmallExtractor creates a TmallExtractor
func NewTmallExtractor() *TmallExtractor {
	return &TmallExtractor{}
}

// Platform returns models.PlatformTmall
func (e *TmallExtractor) Platform() models.Platform {
	return models.PlatformTmall
}

// Extract builds a best-effort record
func (e *TmallExtractor) Extract(doc *Document) (*models.ItemRecord, error) {
	title, err := doc.Title()
	if err != nil {
		return nil, err
	}

	rec := &models.ItemRecord{
		Platform:     models.PlatformTmall,
		Title:        title,
		Attributes:   e.extractAttributes(doc),
		DeliveryInfo: e.extractDeliveryInfo(doc),
		Variants:     []models.VariantRecord{},
		PriceRange:   e.extractPriceRange(doc),
		TotalStock:   0,
		Sales:        e.extractSales(doc),
	}

	log.Debug().
		Str("platform", string(rec.Platform)).
		Int("attributes", len(rec.Attributes)).
		Float64("price", rec.PriceRange.Min).
		Msg("Tmall page extracted")

	return rec, nil
}

// findByClass selects tag elements under root having a class matching rx
func findByClass(root *goquery.Selection, tag string, rx *regexp.Regexp) *goquery.Selection {
	return root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		for _, c := range strings.Fields(class) {
			if rx.MatchString(c) {
				return true
			}
		}
		return false
	})
}

func (e *TmallExtractor) extractAttributes(doc *Document) map[string]string {
	attrs := make(map[string]string)

	container := findByClass(doc.Root(), "div", RxItemDetailAttrs).First()
	if container.Length() == 0 {
		return attrs
	}

	findByClass(container, "span", RxAttrsAttr).Each(func(_ int, s *goquery.Selection) {
		label, value, ok := strings.Cut(s.Text(), fullWidthColon)
		if !ok {
			log.Debug().Str("entry", strings.TrimSpace(s.Text())).Msg("Skipping attribute without full-width colon")
			return
		}
		attrs[strings.TrimSpace(label)] = strings.TrimSpace(value)
	})
	return attrs
}

func (e *TmallExtractor) extractDeliveryInfo(doc *Document) string {
	container := doc.Find(tmallDeliverySelector).First()
	if container.Length() == 0 {
		return models.NoDeliveryInfo
	}

	var parts []string
	container.Find("span").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(s.Text()))
	})
	return strings.Join(parts, ";")
}

// extractPriceRange duplicates the one displayed price into both bounds;
// the template never shows a maximum.
func (e *TmallExtractor) extractPriceRange(doc *Document) models.PriceRange {
	sel := findByClass(doc.Root(), "span", RxPriceText).First()
	if sel.Length() == 0 {
		return models.PriceRange{}
	}
	price, ok := parseFloatText(strings.Trim(strings.TrimSpace(sel.Text()), "¥￥"))
	if !ok || price < 0 {
		log.Debug().Str("text", sel.Text()).Msg("Unparseable price text")
		return models.PriceRange{}
	}
	return models.PriceRange{Min: price, Max: price}
}

func (e *TmallExtractor) extractSales(doc *Document) int {
	sel := findByClass(doc.Root(), "span", RxItemHeaderSalesDesc).First()
	if sel.Length() == 0 {
		return 0
	}
	digits := rxDigits.FindString(sel.Text())
	sales, ok := parseIntText(digits)
	if !ok {
		return 0
	}
	return sales
}
