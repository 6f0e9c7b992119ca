package page

import "testing"

func TestNew(t *testing.T) {
	l := Limits{Default: 20, Max: 50}
	tests := []struct {
		name             string
		number, limit    int
		wantNum, wantLim int
		wantSkip         int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"clamp high", 2, 500, 2, 50, 50},
		{"clamp low", 1, -5, 1, 1, 0},
		{"third page", 3, 20, 3, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.number, tt.limit, l)
			if p.Number() != tt.wantNum || p.Limit() != tt.wantLim || p.Skip() != tt.wantSkip {
				t.Errorf("got page=%d limit=%d skip=%d, want %d/%d/%d",
					p.Number(), p.Limit(), p.Skip(), tt.wantNum, tt.wantLim, tt.wantSkip)
			}
		})
	}
}

func TestPage_InRange(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		name          string
		number, limit int
		want          bool
	}{
		{"first page", 1, 50, true},
		{"last full page", MaxOffset/50 + 1, 50, true},
		{"one page too deep", MaxOffset/50 + 2, 50, false},
		{"single item at the edge", MaxOffset + 1, 1, true},
		{"single item past the edge", MaxOffset + 2, 1, false},
		{"huge page number", 184467440737095518, 50, false},
		{"max int", int(^uint(0) >> 1), 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.number, tt.limit, l)
			if got := p.InRange(); got != tt.want {
				t.Errorf("InRange() = %v, want %v (skip=%d)", got, tt.want, p.Skip())
			}
			if p.Skip() < 0 {
				t.Errorf("Skip() = %d, must not be negative", p.Skip())
			}
		})
	}
}

func TestNew_ZeroLimitsFallBack(t *testing.T) {
	p := New(1, 0, Limits{})
	if p.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", p.Limit(), DefaultLimit)
	}
}

func TestResult_Pages(t *testing.T) {
	r := Result[string]{Total: 41, Page: New(1, 20, DefaultLimits())}
	if r.Pages() != 3 {
		t.Errorf("Pages() = %d, want 3", r.Pages())
	}
	if (Result[string]{}).Pages() != 0 {
		t.Error("zero result should have zero pages")
	}
}
