// Package mech simula redes de força mecânica (moinhos, eixos) no servidor.
package mech

import (
	"math"
	"sync"

	"WinchWorks/shared/config"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// Network é uma rede mecânica alimentada por uma única fonte.
// O ângulo é integrado pelo servidor a cada tick e lido pelos consumidores.
type Network struct {
	ID     int
	Source util.BlockPos

	mu      sync.RWMutex
	speed   float32
	reverse bool
	angle   float32
}

// NewNetwork cria a rede de uma fonte configurada.
func NewNetwork(id int, src config.MechSource) *Network {
	return &Network{
		ID:      id,
		Source:  util.NewBlockPos(src.X, src.Y, src.Z),
		speed:   src.Speed,
		reverse: src.Reverse,
	}
}

func (n *Network) AngleRad() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.angle
}

func (n *Network) Speed() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.speed
}

// TurnDir: uma fonte invertida gira no sentido horário (desce os baldes).
func (n *Network) TurnDir() winch.RotDirection {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.reverse {
		return winch.Clockwise
	}
	return winch.Counterclockwise
}

// SetSpeed muda a velocidade da fonte (0 para a rede).
func (n *Network) SetSpeed(speed float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.speed = speed
}

// SetReverse inverte o sentido de giro.
func (n *Network) SetReverse(reverse bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reverse = reverse
}

// Tick integra o ângulo por dt segundos, mantendo-o em [0, 2π).
func (n *Network) Tick(dt float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.speed <= 0 {
		return
	}
	sign := float32(1)
	if n.reverse {
		sign = -1
	}
	a := float64(n.angle + sign*n.speed*dt)
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	n.angle = float32(a)
}

var _ winch.MechNetwork = (*Network)(nil)
