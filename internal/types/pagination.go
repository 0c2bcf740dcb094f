package types

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	RecommendationsPerPage = 10
	LikedPerPage           = 20
)

type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Page{Number: number, Size: size}
}

// Offset saturates at math.MaxInt, so a page number too large to address
// lands past the end of any result set instead of wrapping around.
func (p Page) Offset() int {
	if p.Size < 1 || p.Number < 1 {
		return 0
	}
	if p.Number-1 > (math.MaxInt-1)/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// PageResult is what a controller hands back; the handler turns it into a
// Paginated envelope once it knows the request URL.
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  Page
}

type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int64  `json:"total"`
}

type Paginated[T any] struct {
	Data  []T       `json:"data"`
	Links PageLinks `json:"links"`
	Meta  PageMeta  `json:"meta"`
}

func NewPaginated[T any](result PageResult[T], path string) Paginated[T] {
	data := result.Items
	if data == nil {
		data = []T{}
	}

	page := result.Page
	lastPage := int((result.Total + int64(page.Size) - 1) / int64(page.Size))
	if lastPage < 1 {
		lastPage = 1
	}

	meta := PageMeta{
		CurrentPage: page.Number,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     page.Size,
		Total:       result.Total,
	}

	if len(data) > 0 {
		from := page.Offset() + 1
		to := page.Offset() + len(data)
		meta.From = &from
		meta.To = &to
	}

	links := PageLinks{
		First: pageURL(path, 1),
		Last:  pageURL(path, lastPage),
	}

	if page.Number > 1 {
		prev := pageURL(path, page.Number-1)
		links.Prev = &prev
	}

	if page.Number < lastPage {
		next := pageURL(path, page.Number+1)
		links.Next = &next
	}

	return Paginated[T]{Data: data, Links: links, Meta: meta}
}

func pageURL(path string, page int) string {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s?%s", path, query.Encode())
}
