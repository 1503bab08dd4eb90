package handlers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type pageParams struct {
	number int
	size   int
}

type pageEnvelope struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// parsePage reads page and page_size. A page that is not a positive integer
// is reported as false; a bad page_size falls back to the default.
func parsePage(r *http.Request, defSize int) (pageParams, bool) {
	q := r.URL.Query()
	p := pageParams{number: 1, size: defSize}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, false
		}
		p.number = n
	}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.size = n
		}
	}
	if p.size <= 0 {
		p.size = defaultPageSize
	}
	if p.size > maxPageSize {
		p.size = maxPageSize
	}
	// The offset must fit an int.
	if p.number-1 > math.MaxInt/p.size {
		return p, false
	}
	return p, true
}

func (p pageParams) repo() repo.Page {
	return repo.Page{Limit: p.size, Offset: (p.number - 1) * p.size}
}

// beyond reports a page past the last one. Page 1 always exists.
func (p pageParams) beyond(count int) bool {
	return p.number > 1 && p.number-1 >= (count+p.size-1)/p.size
}

func writeInvalidPage(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusNotFound, httpx.CodeInvalidPage, "invalid page", nil)
}

func writePage(w http.ResponseWriter, r *http.Request, p pageParams, count int, results any) {
	env := pageEnvelope{Count: count, Results: results}
	if p.number < (count+p.size-1)/p.size {
		env.Next = pageLink(r, p.number+1)
	}
	if p.number > 1 {
		env.Previous = pageLink(r, p.number-1)
	}
	httpx.WriteJSON(w, http.StatusOK, env)
}

func pageLink(r *http.Request, number int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	if r.TLS != nil {
		u.Scheme = "https"
	}
	q := r.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
