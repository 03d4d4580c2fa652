package web

import (
	"errors"
	"net/http"
)

// Page carries the validated paging parameters of a list request.
type Page struct {
	Number int
	Size   int
}

// Paginated is the envelope shared by all list endpoints.
type Paginated struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

// ParsePage reads ?page= and ?page_size= with a 1-based page number,
// falling back to defSize and capping the size at maxSize.
func ParsePage(r *http.Request, defSize int, maxSize int) (Page, error) {
	number, err := QueryInt(r, "page", 1)
	if err != nil {
		return Page{}, err
	}
	if number < 1 {
		return Page{}, errors.New("page must be greater than zero")
	}

	size, err := QueryInt(r, "page_size", defSize)
	if err != nil {
		return Page{}, err
	}
	if size < 1 {
		return Page{}, errors.New("page_size must be greater than zero")
	}
	if size > maxSize {
		size = maxSize
	}

	return Page{Number: number, Size: size}, nil
}

// Limit and Offset translate the page into SQL paging arguments.
func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }
