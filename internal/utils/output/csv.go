package output

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/law-makers/itemscrape/pkg/models"
)

// summaryHeader is the column layout written by WriteSummaryCSV
var summaryHeader = []string{
	"source", "platform", "title", "min_price", "max_price",
	"total_stock", "sales", "variants", "delivery_info", "attributes",
}

// SummaryRow pairs a record with the file it came from
type SummaryRow struct {
	Source string
	Record *models.ItemRecord
}

// WriteSummaryCSV writes one row per record. This is a lossy overview;
// use Encode for the full record.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(summaryHeader); err != nil {
		return err
	}

	for _, row := range rows {
		rec := row.Record
		if rec == nil {
			continue
		}
		record := []string{
			row.Source,
			string(rec.Platform),
			rec.Title,
			strconv.FormatFloat(rec.PriceRange.Min, 'f', -1, 64),
			strconv.FormatFloat(rec.PriceRange.Max, 'f', -1, 64),
			strconv.Itoa(rec.TotalStock),
			strconv.Itoa(rec.Sales),
			strconv.Itoa(len(rec.Variants)),
			rec.DeliveryInfo,
			joinAttributes(rec.Attributes),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// joinAttributes renders attributes as "k=v; k=v" in key order
func joinAttributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, "; ")
}
