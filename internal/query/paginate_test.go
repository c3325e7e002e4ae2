package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorZeroTotal(t *testing.T) {
	p := NewPaginator(1, 5, "http://api.local/advertisement/?page=1")

	offset, limit := p.Window(0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 5, limit)

	page := p.Envelope([]int{})
	assert.Equal(t, 0, page.Quantity)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Nil(t, page.Previous)
	assert.Nil(t, page.Next)
}

func TestPaginatorClampsHighPage(t *testing.T) {
	// 12 rows at 5 per page -> last page 3.
	p := NewPaginator(999, 5, "http://api.local/advertisement/?page=999")

	offset, limit := p.Window(12)
	assert.Equal(t, 10, offset)
	assert.Equal(t, 5, limit)

	page := p.Envelope(nil)
	assert.Equal(t, 3, page.CurrentPage)
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=2")
	assert.Nil(t, page.Next)
}

func TestPaginatorClampsNonPositivePage(t *testing.T) {
	p := NewPaginator(-5, 5, "http://api.local/user/?page=-5")

	offset, _ := p.Window(12)
	assert.Equal(t, 0, offset)

	page := p.Envelope(nil)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Nil(t, page.Previous)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=2")
}

func TestPaginatorMiddlePageLinks(t *testing.T) {
	p := NewPaginator(2, 5, "http://api.local/user/?page=2&search=bob")

	offset, _ := p.Window(12)
	assert.Equal(t, 5, offset)

	page := p.Envelope(nil)
	require.NotNil(t, page.Previous)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Previous, "page=1")
	assert.Contains(t, *page.Previous, "search=bob")
	assert.Contains(t, *page.Next, "page=3")
}

func TestPaginatorAddsPageParam(t *testing.T) {
	// A request URL without an explicit page still produces working links.
	p := NewPaginator(1, 5, "http://api.local/user/")
	p.Window(12)

	page := p.Envelope(nil)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=2")
}

func TestPaginatorEnvelopeBeforeWindowPanics(t *testing.T) {
	p := NewPaginator(1, 5, "http://api.local/user/")
	require.Panics(t, func() { p.Envelope(nil) })
}
