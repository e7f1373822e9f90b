// Package cursor implements keyed pagination over a monotonically
// increasing integer column.
package cursor

import (
	"fmt"
	"math"
)

// Row is one (key, name) pair produced by a keyed scan. Both drivers
// consume exactly this shape: a user or actor identifier plus the
// display name stored alongside it.
type Row struct {
	ID   int64
	Name string
}

// FetchFunc returns the next page of rows whose key is strictly
// greater than after, ordered ascending by key, at most limit rows.
type FetchFunc func(after int64, limit int) ([]Row, error)

// Scanner pages through a keyed relation. The cursor only moves
// forward, so rows appended by concurrent writers with larger keys are
// picked up by later pages and rows deleted before being visited are
// skipped. A scan terminates when a fetch returns an empty page.
type Scanner struct {
	fetch    FetchFunc
	pageSize int
	after    int64
}

// NewScanner returns a Scanner starting below all representable keys.
func NewScanner(fetch FetchFunc, pageSize int) (*Scanner, error) {
	if fetch == nil {
		return nil, fmt.Errorf("fetch func required")
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	return &Scanner{fetch: fetch, pageSize: pageSize, after: math.MinInt64}, nil
}

// Resume repositions the scanner so the next page starts strictly
// after the given key.
func (s *Scanner) Resume(after int64) {
	s.after = after
}

// Cursor returns the current cursor value: the largest key visited so
// far, or the starting value if no page has been consumed.
func (s *Scanner) Cursor() int64 {
	return s.after
}

// Each visits every remaining row once, in ascending key order,
// fetching pages lazily. The cursor advances to the last key of a page
// only after the whole page has been handed to fn, so a failed run can
// be resumed without losing rows. Errors from fetch or fn abort the
// scan.
func (s *Scanner) Each(fn func(Row) error) error {
	for {
		rows, err := s.fetch(s.after, s.pageSize)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}

		// Pages are ordered ascending, so the max key is the last row.
		s.after = rows[len(rows)-1].ID
	}
}
