package fraction

import (
	"sort"
	"testing"
)

func TestRelationalOperators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name                   string
		x, y                   Fraction
		eq, ne, lt, le, gt, ge bool
	}{
		{"one third vs one half", New(1, 3), New(1, 2), false, true, true, true, false, false},
		{"equivalent forms", New(2, 4), New(1, 2), true, false, false, true, false, true},
		{"negative vs positive", New(-1, 2), New(1, 3), false, true, true, true, false, false},
		{"both negative", New(-1, 3), New(-1, 2), false, true, false, false, true, true},
		{"whole numbers", New(6, 2), New(5, 1), false, true, true, true, false, false},
		{"zero vs zero", New(0, 3), Zero(), true, false, false, true, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.Equal(tt.y); got != tt.eq {
				t.Errorf("(%v) == (%v) = %v, want %v", tt.x, tt.y, got, tt.eq)
			}
			if got := tt.x.NotEqual(tt.y); got != tt.ne {
				t.Errorf("(%v) != (%v) = %v, want %v", tt.x, tt.y, got, tt.ne)
			}
			if got := tt.x.Less(tt.y); got != tt.lt {
				t.Errorf("(%v) < (%v) = %v, want %v", tt.x, tt.y, got, tt.lt)
			}
			if got := tt.x.LessEqual(tt.y); got != tt.le {
				t.Errorf("(%v) <= (%v) = %v, want %v", tt.x, tt.y, got, tt.le)
			}
			if got := tt.x.Greater(tt.y); got != tt.gt {
				t.Errorf("(%v) > (%v) = %v, want %v", tt.x, tt.y, got, tt.gt)
			}
			if got := tt.x.GreaterEqual(tt.y); got != tt.ge {
				t.Errorf("(%v) >= (%v) = %v, want %v", tt.x, tt.y, got, tt.ge)
			}
		})
	}
}

func TestCmp_SortsFractions(t *testing.T) {
	t.Parallel()
	values := []Fraction{New(3, 4), New(-1, 2), New(1, 3), Zero(), New(5, 4)}
	sort.Slice(values, func(i, j int) bool { return values[i].Cmp(values[j]) < 0 })

	want := []Fraction{New(-1, 2), Zero(), New(1, 3), New(3, 4), New(5, 4)}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", values, want)
		}
	}
}
