package mech

import (
	"math"
	"testing"

	"WinchWorks/shared/config"
	"WinchWorks/shared/winch"
)

func TestTickIntegratesAngle(t *testing.T) {
	tests := []struct {
		name    string
		src     config.MechSource
		dt      float32
		want    float32
		wantDir winch.RotDirection
	}{
		{"parada", config.MechSource{Speed: 0}, 1, 0, winch.Counterclockwise},
		{"anti-horário", config.MechSource{Speed: 1}, 0.5, 0.5, winch.Counterclockwise},
		{"horário dá a volta", config.MechSource{Speed: 1, Reverse: true}, 0.5, 2*math.Pi - 0.5, winch.Clockwise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNetwork(1, tt.src)
			n.Tick(tt.dt)
			if d := math.Abs(float64(n.AngleRad() - tt.want)); d > 1e-5 {
				t.Errorf("ângulo %v, esperado %v", n.AngleRad(), tt.want)
			}
			if n.TurnDir() != tt.wantDir {
				t.Errorf("sentido %v, esperado %v", n.TurnDir(), tt.wantDir)
			}
		})
	}
}

func TestAngleStaysInRange(t *testing.T) {
	n := NewNetwork(1, config.MechSource{Speed: 3})
	for i := 0; i < 100; i++ {
		n.Tick(0.05)
		if a := n.AngleRad(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("ângulo fora de [0, 2π): %v", a)
		}
	}
}
