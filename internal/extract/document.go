package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed item page together with its raw text.
// Style A needs the raw text because the SKU data lives in inline scripts.
type Document struct {
	doc *goquery.Document
	raw string
}

// NewDocument parses raw HTML text
func NewDocument(raw string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, unreadable("failed to parse HTML", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root), raw: raw}, nil
}

// NewDocumentFromReader reads the whole stream, then parses it
func NewDocumentFromReader(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, unreadable("nil reader", nil)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable("failed to read document", err)
	}
	return NewDocument(string(b))
}

// NewDocumentFromNode wraps an already parsed tree. The raw text is
// recovered by rendering the tree.
func NewDocumentFromNode(root *html.Node) (*Document, error) {
	if root == nil {
		return nil, unreadable("nil document node", nil)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, unreadable("failed to render document", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root), raw: buf.String()}, nil
}

// Title returns the trimmed text of the first <title> element.
// A missing or blank title is a hard failure.
func (d *Document) Title() (string, error) {
	if d == nil || d.doc == nil {
		return "", unreadable("empty document", nil)
	}
	sel := d.doc.Find("title").First()
	if sel.Length() == 0 {
		return "", unreadable("title element not found", ErrMissingTitle)
	}
	title := strings.TrimSpace(sel.Text())
	if title == "" {
		return "", unreadable("title element is empty", ErrMissingTitle)
	}
	return title, nil
}

// Find runs a CSS selector over the document
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Root returns the selection holding the whole document
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Raw returns the document text the page was parsed from
func (d *Document) Raw() string {
	return d.raw
}

// String implements fmt.Stringer for log output
func (d *Document) String() string {
	return fmt.Sprintf("Document(%d bytes)", len(d.raw))
}
