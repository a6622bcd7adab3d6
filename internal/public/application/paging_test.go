package application

import (
	"math"
	"strconv"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"3", 3},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"2.5", 1},
	}
	for _, tt := range tests {
		if got := ParsePage(tt.raw, 10).Number; got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestSliceWindow(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}
	tests := []struct {
		page      int
		wantLen   int
		wantFirst int
	}{
		{1, 10, 0},
		{2, 2, 10},
		{3, 0, 0},
	}
	for _, tt := range tests {
		got := SliceWindow(items, Page{Number: tt.page, Size: 10})
		if got == nil {
			t.Fatalf("page %d: nil window", tt.page)
		}
		if len(got) != tt.wantLen {
			t.Fatalf("page %d: len = %d, want %d", tt.page, len(got), tt.wantLen)
		}
		if tt.wantLen > 0 && got[0] != tt.wantFirst {
			t.Fatalf("page %d: first = %d, want %d", tt.page, got[0], tt.wantFirst)
		}
	}
}

func TestPageOffsetDoesNotOverflow(t *testing.T) {
	page := ParsePage(strconv.Itoa(math.MaxInt), 10)
	if page.Offset() != math.MaxInt {
		t.Fatalf("offset = %d", page.Offset())
	}
	if got := SliceWindow([]int{1, 2, 3}, page); len(got) != 0 {
		t.Fatalf("window = %v", got)
	}
}
