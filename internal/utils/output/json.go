package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/itemscrape/pkg/models"
)

// encodeJSON writes indented JSON. HTML escaping is off so labels such as
// "<b>" and non-ASCII text stay as they appeared on the page.
func encodeJSON(w io.Writer, rec *models.ItemRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}

func decodeJSON(r io.Reader) (*models.ItemRecord, error) {
	var rec models.ItemRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
