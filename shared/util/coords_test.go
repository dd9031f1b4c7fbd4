package util

import (
	"math"
	"testing"
)

func TestFacingYaw(t *testing.T) {
	tests := []struct {
		face Facing
		want float64
	}{
		{FacingNorth, 0},
		{FacingEast, math.Pi / 2},
		{FacingSouth, math.Pi},
		{FacingWest, 3 * math.Pi / 2},
		{FacingUp, 0},
	}
	for _, tt := range tests {
		got := float64(tt.face.Yaw())
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%v.Yaw() = %v, want %v", tt.face, got, tt.want)
		}
	}
}

func TestParseFacing(t *testing.T) {
	for _, f := range []Facing{FacingNorth, FacingEast, FacingSouth, FacingWest, FacingUp, FacingDown} {
		got, err := ParseFacing(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFacing(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFacing("northeast"); err == nil {
		t.Error("esperava erro para face inválida")
	}
}

func TestOffset(t *testing.T) {
	p := NewBlockPos(1, 2, 3)
	if got := p.Up(); got != NewBlockPos(1, 3, 3) {
		t.Errorf("Up() = %v", got)
	}
	if got := p.Offset(FacingEast); got != NewBlockPos(2, 2, 3) {
		t.Errorf("Offset(east) = %v", got)
	}
	if got := p.Key(); got != "1_2_3" {
		t.Errorf("Key() = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 2) != 0 || Clamp(3, 0, 2) != 2 || Clamp(1, 0, 2) != 1 {
		t.Error("Clamp fora do intervalo")
	}
	if Lerp(0, 10, 0.5) != 5 {
		t.Error("Lerp(0,10,0.5) != 5")
	}
}
