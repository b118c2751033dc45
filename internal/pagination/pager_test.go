package pagination

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
		{-3, 10, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestPagerBounds(t *testing.T) {
	p := NewPager()
	p.SetTotalPages(2)

	if p.CanPrev() {
		t.Fatalf("expected prev disabled on first page")
	}
	if p.Prev() {
		t.Fatalf("expected Prev to be a no-op on first page")
	}
	if !p.Next() || p.Page != 2 {
		t.Fatalf("expected to move to page 2, got %d", p.Page)
	}
	if p.CanNext() {
		t.Fatalf("expected next disabled on last page")
	}
	if p.Next() || p.Page != 2 {
		t.Fatalf("expected Next to be a no-op past the last page, got %d", p.Page)
	}
	if !p.Prev() || p.Page != 1 {
		t.Fatalf("expected to move back to page 1, got %d", p.Page)
	}
}

func TestPagerEmptyList(t *testing.T) {
	p := NewPager()
	p.SetTotalPages(0)
	if p.CanNext() || p.CanPrev() {
		t.Fatalf("expected both controls disabled for an empty list")
	}
}
