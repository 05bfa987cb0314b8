package pagination

import (
	"math"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	p, err := Parse("", "")
	if err != nil || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("unexpected defaults %+v %v", p, err)
	}

	p, err = Parse("10", "20")
	if err != nil || p.Limit != 10 || p.Offset != 20 {
		t.Fatalf("unexpected params %+v %v", p, err)
	}

	for _, tc := range [][2]string{{"0", ""}, {"101", ""}, {"abc", ""}, {"", "-1"}, {"", "x"}, {"", "1000001"}, {"", strconv.Itoa(math.MaxInt)}} {
		if _, err := Parse(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for limit=%q offset=%q", tc[0], tc[1])
		}
	}
}

func TestPageFor(t *testing.T) {
	page := PageFor(Params{Limit: 10, Offset: 0}, 25)
	if !page.HasMore || page.Total != 25 {
		t.Fatalf("unexpected page %+v", page)
	}
	page = PageFor(Params{Limit: 10, Offset: 20}, 25)
	if page.HasMore {
		t.Fatalf("last page should not have more: %+v", page)
	}
}

func TestPageForDoesNotOverflow(t *testing.T) {
	page := PageFor(Params{Limit: MaxLimit, Offset: math.MaxInt}, 10)
	if page.HasMore {
		t.Fatalf("offset past the end should not report more: %+v", page)
	}

	p, err := Parse("", strconv.Itoa(MaxOffset))
	if err != nil || p.Offset != MaxOffset {
		t.Fatalf("max offset should be accepted: %+v %v", p, err)
	}
}

func TestNormalizeLimit(t *testing.T) {
	if NormalizeLimit(0) != DefaultLimit || NormalizeLimit(500) != MaxLimit || NormalizeLimit(5) != 5 {
		t.Fatal("unexpected normalization")
	}
}
