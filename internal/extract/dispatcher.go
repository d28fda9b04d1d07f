package extract

import (
	"io"
	"strings"

	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// TmallTitleMarker is the domain substring Tmall puts in every item page title
const TmallTitleMarker = "tmall.com"

// Extractor is implemented by every page template extractor
type Extractor interface {
	// Platform returns the template this extractor understands
	Platform() models.Platform

	// Extract builds a record from a parsed page
	Extract(doc *Document) (*models.ItemRecord, error)
}

// Dispatcher picks the extractor for a page from its title and runs it
type Dispatcher struct {
	extractors map[models.Platform]Extractor
}

// NewDispatcher creates a Dispatcher with the given extractors registered.
// With no arguments the default Taobao and Tmall extractors are used.
func NewDispatcher(extractors ...Extractor) *Dispatcher {
	if len(extractors) == 0 {
		extractors = []Extractor{NewTaobaoExtractor(Decoder{}), NewTmallExtractor()}
	}
	d := &Dispatcher{extractors: make(map[models.Platform]Extractor, len(extractors))}
	for _, e := range extractors {
		d.Register(e)
	}
	return d
}

// Register adds an extractor, replacing any registered for the same platform
func (d *Dispatcher) Register(e Extractor) {
	d.extractors[e.Platform()] = e
}

// Detect classifies a page by its title
func (d *Dispatcher) Detect(doc *Document) (models.Platform, error) {
	title, err := doc.Title()
	if err != nil {
		return "", err
	}
	if strings.Contains(title, TmallTitleMarker) {
		return models.PlatformTmall, nil
	}
	return models.PlatformTaobao, nil
}

// Extract classifies doc and delegates to the matching extractor.
// The extractor's result and error are returned unchanged.
func (d *Dispatcher) Extract(doc *Document) (*models.ItemRecord, error) {
	platform, err := d.Detect(doc)
	if err != nil {
		return nil, err
	}

	e, ok := d.extractors[platform]
	if !ok {
		return nil, NewError(ErrCodeNoExtractor, "cannot extract page", ErrNoExtractor).
			WithDetail("platform", string(platform))
	}

	log.Debug().
		Str("platform", string(platform)).
		Stringer("document", doc).
		Msg("Dispatching page")

	return e.Extract(doc)
}

// ExtractHTML parses raw page text and extracts it
func (d *Dispatcher) ExtractHTML(raw string) (*models.ItemRecord, error) {
	doc, err := NewDocument(raw)
	if err != nil {
		return nil, err
	}
	return d.Extract(doc)
}

// ExtractReader reads a page from r and extracts it
func (d *Dispatcher) ExtractReader(r io.Reader) (*models.ItemRecord, error) {
	doc, err := NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return d.Extract(doc)
}
