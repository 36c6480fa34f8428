package layout

import "testing"

func TestDistributeMain(t *testing.T) {
	type tc struct {
		items     []FlexItem
		mainSize  float64
		gap       float64
		justify   Justify
		wantSizes []float64
		wantPos   []float64
	}

	tests := map[string]tc{
		"no flex packs at start": {
			items:     []FlexItem{{BaseSize: 10}, {BaseSize: 20}},
			mainSize:  100,
			wantSizes: []float64{10, 20},
			wantPos:   []float64{0, 10},
		},
		"grow splits free space": {
			items:     []FlexItem{{BaseSize: 10, Grow: 1}, {BaseSize: 10, Grow: 3}},
			mainSize:  100,
			wantSizes: []float64{30, 70},
			wantPos:   []float64{0, 30},
		},
		"shrink removes deficit": {
			items:     []FlexItem{{BaseSize: 60, Shrink: 1}, {BaseSize: 60, Shrink: 1}},
			mainSize:  100,
			wantSizes: []float64{50, 50},
			wantPos:   []float64{0, 50},
		},
		"gap between items": {
			items:     []FlexItem{{BaseSize: 10}, {BaseSize: 10}, {BaseSize: 10}},
			mainSize:  100,
			gap:       5,
			wantSizes: []float64{10, 10, 10},
			wantPos:   []float64{0, 15, 30},
		},
		"justify end": {
			items:     []FlexItem{{BaseSize: 10}, {BaseSize: 10}},
			mainSize:  100,
			justify:   JustifyEnd,
			wantSizes: []float64{10, 10},
			wantPos:   []float64{80, 90},
		},
		"space between": {
			items:     []FlexItem{{BaseSize: 10}, {BaseSize: 10}, {BaseSize: 10}},
			mainSize:  70,
			justify:   JustifySpaceBetween,
			wantSizes: []float64{10, 10, 10},
			wantPos:   []float64{0, 30, 60},
		},
		"max clamps grow": {
			items:     []FlexItem{{BaseSize: 10, Grow: 1, MaxMain: 20}, {BaseSize: 10}},
			mainSize:  100,
			wantSizes: []float64{20, 10},
			wantPos:   []float64{0, 20},
		},
		"unbounded main ignores grow": {
			items:     []FlexItem{{BaseSize: 10, Grow: 1}},
			mainSize:  Infinity,
			justify:   JustifyCenter,
			wantSizes: []float64{10},
			wantPos:   []float64{0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			DistributeMain(tt.items, tt.mainSize, tt.gap, tt.justify)
			for i := range tt.items {
				if tt.items[i].MainSize != tt.wantSizes[i] {
					t.Errorf("item %d MainSize = %v, want %v", i, tt.items[i].MainSize, tt.wantSizes[i])
				}
				if tt.items[i].MainPos != tt.wantPos[i] {
					t.Errorf("item %d MainPos = %v, want %v", i, tt.items[i].MainPos, tt.wantPos[i])
				}
			}
		})
	}
}

func TestAlignOffset(t *testing.T) {
	if got := AlignOffset(AlignCenter, 100, 20); got != 40 {
		t.Errorf("AlignOffset(center) = %v, want 40", got)
	}
	if got := AlignOffset(AlignEnd, 100, 20); got != 80 {
		t.Errorf("AlignOffset(end) = %v, want 80", got)
	}
	if got := AlignOffset(AlignStretch, 100, 20); got != 0 {
		t.Errorf("AlignOffset(stretch) = %v, want 0", got)
	}
}

func TestRoundSize(t *testing.T) {
	got := RoundSize(Size(10.4, 10.6))
	if got != Size(10, 11) {
		t.Errorf("RoundSize = %+v, want 10x11", got)
	}
	inf := RoundSize(Size(Infinity, 1.5))
	if inf.Width != Infinity || inf.Height != 2 {
		t.Errorf("RoundSize(inf) = %+v", inf)
	}
}
