package util

import (
	"fmt"
	"math"
)

// BlockPos representa a posição de um bloco no mundo.
// X = leste/oeste, Y = vertical (cima), Z = norte/sul (sul positivo)
type BlockPos struct {
	X, Y, Z int32
}

// NewBlockPos cria uma nova posição de bloco.
func NewBlockPos(x, y, z int32) BlockPos {
	return BlockPos{X: x, Y: y, Z: z}
}

// Add soma duas posições.
func (p BlockPos) Add(other BlockPos) BlockPos {
	return BlockPos{
		X: p.X + other.X,
		Y: p.Y + other.Y,
		Z: p.Z + other.Z,
	}
}

// Offset retorna a posição vizinha na face indicada.
func (p BlockPos) Offset(f Facing) BlockPos {
	return p.Add(faceOffsets[f])
}

// Up e Down são atalhos para os vizinhos verticais.
func (p BlockPos) Up() BlockPos   { return p.Offset(FacingUp) }
func (p BlockPos) Down() BlockPos { return p.Offset(FacingDown) }

// String retorna a representação em string da posição.
func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Key retorna a chave usada na persistência ("X_Y_Z").
func (p BlockPos) Key() string {
	return fmt.Sprintf("%d_%d_%d", p.X, p.Y, p.Z)
}

// Facing é uma das seis faces de um bloco.
// As quatro horizontais são as variantes de montagem do guincho.
type Facing uint8

const (
	FacingNorth Facing = iota
	FacingEast
	FacingSouth
	FacingWest
	FacingUp
	FacingDown
)

var faceOffsets = [...]BlockPos{
	FacingNorth: {X: 0, Y: 0, Z: -1},
	FacingEast:  {X: 1, Y: 0, Z: 0},
	FacingSouth: {X: 0, Y: 0, Z: 1},
	FacingWest:  {X: -1, Y: 0, Z: 0},
	FacingUp:    {X: 0, Y: 1, Z: 0},
	FacingDown:  {X: 0, Y: -1, Z: 0},
}

var facingNames = [...]string{
	FacingNorth: "north",
	FacingEast:  "east",
	FacingSouth: "south",
	FacingWest:  "west",
	FacingUp:    "up",
	FacingDown:  "down",
}

// Yaw em radianos por face horizontal, múltiplos de um quarto de volta.
var facingYaw = [...]float32{
	FacingNorth: 0,
	FacingEast:  math.Pi / 2,
	FacingSouth: math.Pi,
	FacingWest:  math.Pi + math.Pi/2,
}

// String retorna o nome da face ("north", "east", ...).
func (f Facing) String() string {
	if int(f) < len(facingNames) {
		return facingNames[f]
	}
	return fmt.Sprintf("Facing(%d)", uint8(f))
}

// IsHorizontal indica se a face é uma das quatro cardeais.
func (f Facing) IsHorizontal() bool {
	return f <= FacingWest
}

// Yaw retorna a rotação Y do modelo montado nesta face. Faces verticais não giram.
func (f Facing) Yaw() float32 {
	if !f.IsHorizontal() {
		return 0
	}
	return facingYaw[f]
}

// ParseFacing converte o nome de uma face. Usado apenas na borda (config/arquivos).
func ParseFacing(s string) (Facing, error) {
	for i, name := range facingNames {
		if name == s {
			return Facing(i), nil
		}
	}
	return FacingNorth, fmt.Errorf("face desconhecida: %q", s)
}

// MarshalText e UnmarshalText permitem usar Facing direto em JSON/YAML.
func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Facing) UnmarshalText(b []byte) error {
	parsed, err := ParseFacing(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
