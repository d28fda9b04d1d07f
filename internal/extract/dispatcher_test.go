package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/law-makers/itemscrape/internal/extract"
	"github.com/law-makers/itemscrape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type stubExtractor struct {
	platform models.Platform
	rec      *models.ItemRecord
	err      error
	calls    int
}

func (s *stubExtractor) Platform() models.Platform { return s.platform }

func (s *stubExtractor) Extract(doc *extract.Document) (*models.ItemRecord, error) {
	s.calls++
	return s.rec, s.err
}

func TestDispatcher_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  models.Platform
	}{
		{"tmall marker", "商品详情-tmall.com天猫", models.PlatformTmall},
		{"taobao title", "商品详情-淘宝网", models.PlatformTaobao},
		{"marker is case sensitive", "item - TMALL.COM", models.PlatformTaobao},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := extract.NewDocument("<html><head><title>" + tt.title + "</title></head><body></body></html>")
			require.NoError(t, err)

			got, err := extract.NewDispatcher().Detect(doc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatcher_DelegatesUnchanged(t *testing.T) {
	t.Parallel()

	want := &models.ItemRecord{Platform: models.PlatformTmall, Title: "stub"}
	wantErr := errors.New("extractor failed")
	tmall := &stubExtractor{platform: models.PlatformTmall, rec: want}
	taobao := &stubExtractor{platform: models.PlatformTaobao, err: wantErr}
	d := extract.NewDispatcher(taobao, tmall)

	rec, err := d.ExtractHTML(`<title>x - tmall.com</title>`)
	require.NoError(t, err)
	assert.Same(t, want, rec)

	rec, err = d.ExtractHTML(`<title>x - taobao</title>`)
	assert.Nil(t, rec)
	assert.Same(t, wantErr, err)

	assert.Equal(t, 1, tmall.calls)
	assert.Equal(t, 1, taobao.calls)
}

func TestDispatcher_Unreadable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"no title", "<html><body><p>hello</p></body></html>"},
		{"blank title", "<html><head><title>   </title></head></html>"},
		{"plain text", "just some text"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := extract.NewDispatcher().ExtractHTML(tt.raw)

			assert.Nil(t, rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, extract.ErrDocumentUnreadable)
			assert.Equal(t, extract.ErrCodeDocumentUnreadable, extract.CodeOf(err))
		})
	}
}

func TestDispatcher_NoExtractorRegistered(t *testing.T) {
	t.Parallel()

	d := extract.NewDispatcher(&stubExtractor{platform: models.PlatformTaobao})

	_, err := d.ExtractHTML(`<title>x - tmall.com</title>`)

	assert.ErrorIs(t, err, extract.ErrNoExtractor)
	assert.Equal(t, extract.ErrCodeNoExtractor, extract.CodeOf(err))
}

func TestDispatcher_ExtractReader(t *testing.T) {
	t.Parallel()

	raw := taobaoPage(`<ul class="attributes-list"><li>Color: Red</li></ul>`,
		`skuMap: {"tag1;": {"skuId":"S1","price":"19.9","stock":"5"}}
propertyMemoMap: {"tag1":"Red"}`)

	rec, err := extract.NewDispatcher().ExtractReader(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, models.PlatformTaobao, rec.Platform)
	require.Len(t, rec.Variants, 1)
	assert.Equal(t, 5, rec.TotalStock)
}

func TestDispatcher_TmallEndToEnd(t *testing.T) {
	t.Parallel()

	raw := tmallPage(`<span class="Price--priceText--2nLbVda">88</span>
<span class="ItemHeader--salesDesc--srlk2Hv">120人付款</span>`)

	rec, err := extract.NewDispatcher().ExtractHTML(raw)

	require.NoError(t, err)
	assert.Equal(t, models.PlatformTmall, rec.Platform)
	assert.Equal(t, models.PriceRange{Min: 88, Max: 88}, rec.PriceRange)
	assert.Equal(t, 120, rec.Sales)
}

func TestNewDocumentFromNode(t *testing.T) {
	t.Parallel()

	root, err := html.Parse(strings.NewReader(taobaoPage("",
		`skuMap: {"a;": {"price":"2"}}
propertyMemoMap: {"a":"A"}`)))
	require.NoError(t, err)

	doc, err := extract.NewDocumentFromNode(root)
	require.NoError(t, err)

	assert.Contains(t, doc.Raw(), "propertyMemoMap")
	rec, err := extract.NewDispatcher().Extract(doc)
	require.NoError(t, err)
	require.Len(t, rec.Variants, 1)
	assert.Equal(t, 2.0, rec.Variants[0].Price)
}

func TestNewDocumentFromReader_Nil(t *testing.T) {
	t.Parallel()

	_, err := extract.NewDocumentFromReader(nil)

	assert.ErrorIs(t, err, extract.ErrDocumentUnreadable)
}
