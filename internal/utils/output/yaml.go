package output

import (
	"io"

	"github.com/law-makers/itemscrape/pkg/models"
	yaml "gopkg.in/yaml.v3"
)

func encodeYAML(w io.Writer, rec *models.ItemRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func decodeYAML(r io.Reader) (*models.ItemRecord, error) {
	var rec models.ItemRecord
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
