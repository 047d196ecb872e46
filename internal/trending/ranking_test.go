package trending

import "testing"

func TestWeight(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		active bool
		want   float64
	}{
		{name: "like on", kind: KindLike, active: true, want: 1},
		{name: "like off", kind: KindLike, active: false, want: -1},
		{name: "favorite on", kind: KindFavorite, active: true, want: 2},
		{name: "favorite off", kind: KindFavorite, active: false, want: -2},
		{name: "unknown kind", kind: "share", active: true, want: 0},
		{name: "unknown kind off", kind: "share", active: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weight(tt.kind, tt.active); got != tt.want {
				t.Errorf("Weight(%q, %v) = %v, want %v", tt.kind, tt.active, got, tt.want)
			}
		})
	}
}

func TestWeight_ToggleIsSymmetric(t *testing.T) {
	for _, kind := range []string{KindLike, KindFavorite} {
		if Weight(kind, true)+Weight(kind, false) != 0 {
			t.Errorf("toggling %s on then off must cancel out", kind)
		}
	}
}
