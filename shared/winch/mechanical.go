package winch

import "WinchWorks/shared/util"

// RotDirection é o sentido de giro de uma rede mecânica.
type RotDirection uint8

const (
	Clockwise RotDirection = iota
	Counterclockwise
)

// Sign retorna +1 para anti-horário e -1 para horário.
func (d RotDirection) Sign() float32 {
	if d == Counterclockwise {
		return 1
	}
	return -1
}

// MechNetwork é a rede de força mecânica vista por um consumidor.
// O ângulo é a fonte da verdade; o guincho nunca integra o ângulo localmente quando conectado.
type MechNetwork interface {
	AngleRad() float32
	TurnDir() RotDirection
	Speed() float32
}

// Shaft descreve o poço abaixo de um guincho (limites de curso e líquido no fundo).
type Shaft interface {
	MaxDepth(pos util.BlockPos) float32
	BottomLiquid(pos util.BlockPos) string
}
