package layout

import "testing"

func TestLayoutConstraint_Constrain(t *testing.T) {
	type tc struct {
		constraint LayoutConstraint
		size       SizeF
		expected   SizeF
	}

	tests := map[string]tc{
		"within range": {
			constraint: LayoutConstraint{MaxSize: Size(100, 100)},
			size:       Size(40, 50),
			expected:   Size(40, 50),
		},
		"clamped to max": {
			constraint: LayoutConstraint{MaxSize: Size(100, 100)},
			size:       Size(140, 150),
			expected:   Size(100, 100),
		},
		"raised to min": {
			constraint: LayoutConstraint{MinSize: Size(10, 20), MaxSize: Size(100, 100)},
			size:       Size(0, 0),
			expected:   Size(10, 20),
		},
		"min wins over max": {
			constraint: LayoutConstraint{MinSize: Size(50, 50), MaxSize: Size(10, 10)},
			size:       Size(30, 30),
			expected:   Size(50, 50),
		},
		"unbounded": {
			constraint: Unbounded(),
			size:       Size(1e6, 1e6),
			expected:   Size(1e6, 1e6),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.constraint.Constrain(tt.size); got != tt.expected {
				t.Errorf("Constrain(%+v) = %+v, want %+v", tt.size, got, tt.expected)
			}
		})
	}
}

func TestLayoutConstraint_MinusPadding(t *testing.T) {
	c := RootConstraint(Size(100, 50))
	c.SelfIdealSize.SetWidth(80)
	c.MinusPadding(Edges{Left: 5, Right: 5, Top: 30, Bottom: 30})

	if c.MaxSize != Size(90, 0) {
		t.Errorf("MaxSize = %+v, want 90x0", c.MaxSize)
	}
	if c.SelfIdealSize.Width != 70 || c.SelfIdealSize.HasHeight {
		t.Errorf("SelfIdealSize = %+v, want width 70 and no height", c.SelfIdealSize)
	}
	if c.PercentReference != Size(90, 0) {
		t.Errorf("PercentReference = %+v, want 90x0", c.PercentReference)
	}
}

func TestLayoutConstraint_Equal(t *testing.T) {
	a := RootConstraint(Size(10, 10))
	b := RootConstraint(Size(10, 10))
	if !a.Equal(b) {
		t.Error("identical root constraints should be equal")
	}
	b.SelfIdealSize.SetHeight(3)
	if a.Equal(b) {
		t.Error("constraints differing in self ideal size should not be equal")
	}
}

func TestAlignment_Position(t *testing.T) {
	parent := Size(100, 50)
	child := Size(20, 10)

	type tc struct {
		align    Alignment
		expected OffsetF
	}

	tests := map[string]tc{
		"top left":     {align: TopLeft, expected: Offset(0, 0)},
		"center":       {align: Center, expected: Offset(40, 20)},
		"bottom right": {align: BottomRight, expected: Offset(80, 40)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.align.Position(parent, child); got != tt.expected {
				t.Errorf("Position = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
