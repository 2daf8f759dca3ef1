package natsort

import (
	"reflect"
	"testing"
)

func TestCompare_NumericRuns(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Clip 2", "Clip 10", -1},
		{"Clip 10", "Clip 2", 1},
		{"Clip 2", "Clip 2", 0},
		{"Video 002", "Video 2", 0},
		{"Lesson 9 intro", "Lesson 10 intro", -1},
		{"a", "b", -1},
		{"abc", "ab", 1},
		{"", "a", -1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_CaseInsensitive(t *testing.T) {
	if got := Compare("VIDEO", "video"); got != 0 {
		t.Errorf("Compare(VIDEO, video) = %d, want 0", got)
	}
	if !Less("apple", "Banana") {
		t.Error("expected apple < Banana regardless of case")
	}
}

func TestSortBy_NaturalOrder(t *testing.T) {
	titles := []string{"Clip 10", "Clip 2", "Clip 1"}
	SortBy(titles, func(s string) string { return s })

	want := []string{"Clip 1", "Clip 2", "Clip 10"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("sorted = %v, want %v", titles, want)
	}
}

func TestSortBy_Stable(t *testing.T) {
	type rec struct {
		title string
		tag   int
	}
	recs := []rec{
		{"Video 01", 1},
		{"Video 1", 2},
		{"Video 1", 3},
	}
	SortBy(recs, func(r rec) string { return r.title })

	// All three titles compare equal; original order must be preserved.
	wantTags := []int{1, 2, 3}
	for i, r := range recs {
		if r.tag != wantTags[i] {
			t.Fatalf("stability broken at %d: got tag %d, want %d", i, r.tag, wantTags[i])
		}
	}
}

func TestCompare_LargeNumbers(t *testing.T) {
	// Runs longer than an int64 must still compare by magnitude.
	a := "v99999999999999999999"
	b := "v100000000000000000000"
	if !Less(a, b) {
		t.Errorf("expected %q < %q", a, b)
	}
}
