package extract

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// Inline script markers on Taobao pages. Each captures the rest of its line.
var (
	rxSKUMap          = regexp.MustCompile(`(?m)skuMap\s*:([^\n]*)$`)
	rxPropertyMemoMap = regexp.MustCompile(`(?m)propertyMemoMap\s*:([^\n]*)$`)
)

// DefaultEvalTimeout bounds a lenient evaluation of one script fragment
const DefaultEvalTimeout = 50 * time.Millisecond

var (
	errNotObject    = errors.New("fragment is not an object")
	errTrailingData = errors.New("trailing data after object")
)

// SKUEntry is one entry of the embedded SKU map. Key is the option-sequence
// string (";tag1;tag2;"). Fields is nil when the value is not an object.
type SKUEntry struct {
	Key    string
	Fields map[string]any
}

// SKUMap holds the SKU entries in source order
type SKUMap []SKUEntry

// LabelMap maps option tags to their display labels
type LabelMap map[string]any

// Decoder extracts the SKU map and the label map from page text.
//
// The zero value decodes strictly: each fragment must be a JSON object.
// With Lenient set, a fragment that is not valid JSON is evaluated as a
// JavaScript object literal in a throwaway VM and converted back to JSON.
type Decoder struct {
	Lenient     bool
	EvalTimeout time.Duration
}

// Decode runs a strict Decoder over raw
func Decode(raw string) (SKUMap, LabelMap) {
	return Decoder{}.Decode(raw)
}

// Decode locates both markers and parses their fragments. If either marker
// is missing or either fragment fails to parse, both results are empty.
// This is never an error: most pages without variants simply lack the data.
func (d Decoder) Decode(raw string) (SKUMap, LabelMap) {
	skuFrag, ok := captureLine(rxSKUMap, raw)
	if !ok {
		log.Debug().Msg("skuMap marker not found")
		return SKUMap{}, LabelMap{}
	}
	memoFrag, ok := captureLine(rxPropertyMemoMap, raw)
	if !ok {
		log.Debug().Msg("propertyMemoMap marker not found")
		return SKUMap{}, LabelMap{}
	}

	skus, err := d.parseSKUMap(skuFrag)
	if err != nil {
		log.Debug().Err(err).Msg("skuMap fragment is not decodable")
		return SKUMap{}, LabelMap{}
	}
	labels, err := d.parseLabelMap(memoFrag)
	if err != nil {
		log.Debug().Err(err).Msg("propertyMemoMap fragment is not decodable")
		return SKUMap{}, LabelMap{}
	}

	return skus, labels
}

func captureLine(rx *regexp.Regexp, raw string) (string, bool) {
	m := rx.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (d Decoder) parseSKUMap(frag string) (SKUMap, error) {
	skus, err := decodeSKUMap(frag)
	if err == nil || !d.Lenient {
		return skus, err
	}
	converted, evalErr := d.evalLiteral(frag)
	if evalErr != nil {
		return nil, errors.Join(err, evalErr)
	}
	return decodeSKUMap(converted)
}

func (d Decoder) parseLabelMap(frag string) (LabelMap, error) {
	labels, err := decodeLabelMap(frag)
	if err == nil || !d.Lenient {
		return labels, err
	}
	converted, evalErr := d.evalLiteral(frag)
	if evalErr != nil {
		return nil, errors.Join(err, evalErr)
	}
	return decodeLabelMap(converted)
}

// decodeSKUMap walks the top-level object token by token to keep key order
func decodeSKUMap(frag string) (SKUMap, error) {
	dec := json.NewDecoder(strings.NewReader(frag))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	skus := SKUMap{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields, _ := value.(map[string]any)

		// a repeated key keeps its first position and its last value
		if i, seen := index[key]; seen {
			skus[i].Fields = fields
			continue
		}
		index[key] = len(skus)
		skus = append(skus, SKUEntry{Key: key, Fields: fields})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return skus, nil
}

func decodeLabelMap(frag string) (LabelMap, error) {
	dec := json.NewDecoder(strings.NewReader(frag))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	labels, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return LabelMap(labels), nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return errTrailingData
	}
	return nil
}

// evalLiteral evaluates frag as an object literal and returns its JSON form.
// Trailing statement punctuation left over from the script line is dropped.
func (d Decoder) evalLiteral(frag string) (string, error) {
	frag = strings.TrimRight(strings.TrimSpace(frag), ",;")
	if frag == "" {
		return "", errNotObject
	}

	timeout := d.EvalTimeout
	if timeout <= 0 {
		timeout = DefaultEvalTimeout
	}

	vm := goja.New()
	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt("evaluation timeout")
	})
	defer timer.Stop()

	v, err := vm.RunString("JSON.stringify((" + frag + "\n))")
	if err != nil {
		return "", err
	}
	s, ok := v.Export().(string)
	if !ok {
		return "", errNotObject
	}
	return s, nil
}
