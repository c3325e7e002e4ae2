package query

import (
	"math"
	"net/url"
	"strconv"
)

// Page is the envelope returned for every list endpoint: total row count,
// the clamped current page and full prev/next URLs (nil at the edges).
type Page struct {
	Quantity    int     `json:"quantity"`
	CurrentPage int     `json:"current_page"`
	Previous    *string `json:"previous"`
	Next        *string `json:"next"`
	Results     any     `json:"results"`
}

// Paginator computes an offset/limit window for a requested page once the
// total row count of the filtered query is known. Usage is two-phase:
// NewPaginator, then Window with the count, then Envelope with the page of
// results. Calling Envelope before Window is a caller bug and panics.
type Paginator struct {
	requested int
	perPage   int
	url       string

	total    int
	current  int
	lastPage int
	windowed bool
}

// NewPaginator builds a paginator for the given requested page (1 when the
// client sent none), the configured page size and the full request URL the
// prev/next links are derived from.
func NewPaginator(page, perPage int, requestURL string) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{requested: page, perPage: perPage, url: requestURL}
}

// Window records the total count and returns the offset/limit pair for the
// clamped page. A zero total still yields a valid window for page 1.
func (p *Paginator) Window(total int) (offset, limit int) {
	p.total = total
	p.lastPage = int(math.Ceil(float64(total) / float64(p.perPage)))
	if p.lastPage < 1 {
		p.lastPage = 1
	}
	p.current = p.requested
	if p.current > p.lastPage {
		p.current = p.lastPage
	}
	if p.current < 1 {
		p.current = 1
	}
	p.windowed = true
	return (p.current - 1) * p.perPage, p.perPage
}

// Envelope wraps one page of results. The reported current page is the
// clamped one, not what the client requested.
func (p *Paginator) Envelope(results any) Page {
	if !p.windowed {
		panic("query: Paginator.Envelope called before Window")
	}
	return Page{
		Quantity:    p.total,
		CurrentPage: p.current,
		Previous:    p.pageURL(p.current - 1),
		Next:        p.pageURL(p.current + 1),
		Results:     results,
	}
}

// pageURL rewrites the request URL's page parameter, or returns nil when the
// page falls outside [1, lastPage].
func (p *Paginator) pageURL(page int) *string {
	if page < 1 || page > p.lastPage {
		return nil
	}
	u, err := url.Parse(p.url)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
