package cursor

import (
	"errors"
	"fmt"
	"testing"
)

// sliceFetch builds a FetchFunc over an in-memory ascending row set,
// mimicking a keyed ORDER BY ... LIMIT query.
func sliceFetch(rows *[]Row) FetchFunc {
	return func(after int64, limit int) ([]Row, error) {
		var page []Row
		for _, r := range *rows {
			if r.ID > after {
				page = append(page, r)
				if len(page) == limit {
					break
				}
			}
		}
		return page, nil
	}
}

func TestScannerVisitsEveryRowOnce(t *testing.T) {
	rows := []Row{{1, "a"}, {3, "b"}, {7, "c"}, {8, "d"}, {20, "e"}}

	// Page size 1, 2, and larger than the table must all produce the
	// same complete, ordered visit.
	for _, pageSize := range []int{1, 2, 100} {
		t.Run(fmt.Sprintf("page_size_%d", pageSize), func(t *testing.T) {
			s, err := NewScanner(sliceFetch(&rows), pageSize)
			if err != nil {
				t.Fatalf("NewScanner failed: %v", err)
			}

			var got []Row
			if err := s.Each(func(r Row) error {
				got = append(got, r)
				return nil
			}); err != nil {
				t.Fatalf("Each failed: %v", err)
			}

			if len(got) != len(rows) {
				t.Fatalf("visited %d rows, want %d", len(got), len(rows))
			}
			for i := range rows {
				if got[i] != rows[i] {
					t.Errorf("row %d: got %+v, want %+v", i, got[i], rows[i])
				}
			}
		})
	}
}

func TestScannerEmptyRelation(t *testing.T) {
	var rows []Row
	s, err := NewScanner(sliceFetch(&rows), 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	calls := 0
	if err := s.Each(func(Row) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Each failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no visits, got %d", calls)
	}
}

func TestScannerResume(t *testing.T) {
	rows := []Row{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}}
	s, err := NewScanner(sliceFetch(&rows), 2)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	s.Resume(2)

	var got []int64
	if err := s.Each(func(r Row) error {
		got = append(got, r.ID)
		return nil
	}); err != nil {
		t.Fatalf("Each failed: %v", err)
	}

	want := []int64{3, 4}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visited %v, want %v", got, want)
		}
	}
	if s.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", s.Cursor())
	}
}

func TestScannerPicksUpConcurrentAppends(t *testing.T) {
	rows := []Row{{1, "a"}, {2, "b"}}
	s, err := NewScanner(sliceFetch(&rows), 1)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	appended := false
	var got []int64
	if err := s.Each(func(r Row) error {
		got = append(got, r.ID)
		if !appended {
			// Writer adds a row with a larger key mid-scan.
			rows = append(rows, Row{9, "late"})
			appended = true
		}
		return nil
	}); err != nil {
		t.Fatalf("Each failed: %v", err)
	}

	want := []int64{1, 2, 9}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visited %v, want %v", got, want)
		}
	}
}

func TestScannerPropagatesErrors(t *testing.T) {
	fetchErr := errors.New("connection lost")
	s, err := NewScanner(func(after int64, limit int) ([]Row, error) {
		return nil, fetchErr
	}, 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	if err := s.Each(func(Row) error { return nil }); !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error, got %v", err)
	}

	rows := []Row{{1, "a"}}
	s, err = NewScanner(sliceFetch(&rows), 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	fnErr := errors.New("bad row")
	if err := s.Each(func(Row) error { return fnErr }); !errors.Is(err, fnErr) {
		t.Errorf("expected row error, got %v", err)
	}
}

func TestNewScannerValidation(t *testing.T) {
	if _, err := NewScanner(nil, 10); err == nil {
		t.Error("expected error for nil fetch func")
	}
	if _, err := NewScanner(func(int64, int) ([]Row, error) { return nil, nil }, 0); err == nil {
		t.Error("expected error for zero page size")
	}
}
