package meshing

import (
	"encoding/json"
	"fmt"
)

// Shape é um modelo de blocos retangulares, no formato JSON dos assets.
// Coordenadas em dezesseis avos de bloco (0..16).
type Shape struct {
	Textures map[string]string `json:"textures"` // chave -> nome da textura
	Elements []ShapeElement    `json:"elements"`
}

// ShapeElement é uma caixa do modelo.
type ShapeElement struct {
	Name  string               `json:"name,omitempty"`
	From  [3]float32           `json:"from"`
	To    [3]float32           `json:"to"`
	Faces map[string]ShapeFace `json:"faces"` // "north", "east", "south", "west", "up", "down"
	Flags int32                `json:"flags,omitempty"`
}

// ShapeFace referencia uma textura pela chave ("#water" ou "water") e a área UV em dezesseis avos.
type ShapeFace struct {
	Texture string     `json:"texture"`
	UV      [4]float32 `json:"uv"`
}

// ParseShape decodifica um shape JSON.
func ParseShape(raw []byte) (*Shape, error) {
	var s Shape
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	if len(s.Elements) == 0 {
		return nil, fmt.Errorf("shape sem elementos")
	}
	return &s, nil
}

// faceOrder fixa a ordem das faces para que a geometria seja determinística.
var faceOrder = [...]string{"north", "east", "south", "west", "up", "down"}

var faceNormals = map[string][3]float32{
	"north": {0, 0, -1},
	"east":  {1, 0, 0},
	"south": {0, 0, 1},
	"west":  {-1, 0, 0},
	"up":    {0, 1, 0},
	"down":  {0, -1, 0},
}

// faceCorners retorna os quatro cantos da face (anti-horário visto de fora).
func faceCorners(face string, a, b [3]float32) (v1, v2, v3, v4 [3]float32) {
	x0, y0, z0 := a[0], a[1], a[2]
	x1, y1, z1 := b[0], b[1], b[2]
	switch face {
	case "north":
		return [3]float32{x1, y0, z0}, [3]float32{x0, y0, z0}, [3]float32{x0, y1, z0}, [3]float32{x1, y1, z0}
	case "south":
		return [3]float32{x0, y0, z1}, [3]float32{x1, y0, z1}, [3]float32{x1, y1, z1}, [3]float32{x0, y1, z1}
	case "east":
		return [3]float32{x1, y0, z1}, [3]float32{x1, y0, z0}, [3]float32{x1, y1, z0}, [3]float32{x1, y1, z1}
	case "west":
		return [3]float32{x0, y0, z0}, [3]float32{x0, y0, z1}, [3]float32{x0, y1, z1}, [3]float32{x0, y1, z0}
	case "up":
		return [3]float32{x0, y1, z1}, [3]float32{x1, y1, z1}, [3]float32{x1, y1, z0}, [3]float32{x0, y1, z0}
	default: // down
		return [3]float32{x0, y0, z0}, [3]float32{x1, y0, z0}, [3]float32{x1, y0, z1}, [3]float32{x0, y0, z1}
	}
}
