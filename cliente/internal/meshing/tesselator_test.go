package meshing

import (
	"errors"
	"testing"

	"WinchWorks/shared/catalog"
	"WinchWorks/shared/items"
)

const cubeJSON = `{
	"textures": {"wood": "oak"},
	"elements": [{
		"from": [0, 0, 0], "to": [16, 16, 16],
		"faces": {
			"north": {"texture": "#wood", "uv": [0, 0, 16, 16]},
			"east":  {"texture": "#wood", "uv": [0, 0, 16, 16]},
			"south": {"texture": "#wood", "uv": [0, 0, 16, 16]},
			"west":  {"texture": "#wood", "uv": [0, 0, 16, 16]},
			"up":    {"texture": "#wood", "uv": [0, 0, 16, 16]},
			"down":  {"texture": "#wood", "uv": [0, 0, 16, 16]}
		}
	}]
}`

const liquidJSON = `{
	"elements": [{
		"from": [3, 0, 3], "to": [13, 1, 13], "flags": 4096,
		"faces": {"up": {"texture": "#contents", "uv": [3, 3, 13, 13]}}
	}]
}`

type mapShapes struct {
	shapes map[string]*Shape
	items  map[string]string
	blocks map[string]string
}

func (m mapShapes) ShapeAt(path string) (*Shape, error) {
	if s, ok := m.shapes[path]; ok {
		return s, nil
	}
	return nil, errors.New("não existe")
}
func (m mapShapes) ItemShape(code string) (string, bool) {
	p, ok := m.items[code]
	return p, ok
}
func (m mapShapes) BlockShape(code string) (string, bool) {
	p, ok := m.blocks[code]
	return p, ok
}

func mustShape(t *testing.T, raw string) *Shape {
	t.Helper()
	s, err := ParseShape([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTesselateCube(t *testing.T) {
	cube := mustShape(t, cubeJSON)
	tess := NewTesselator(mapShapes{})
	g, err := tess.TesselateShape(cube, ShapeTextureSource{Shape: cube})
	if err != nil {
		t.Fatal(err)
	}
	if g.VertexCount() != 36 || len(g.Flags) != 36 || len(g.Colors) != 36*4 || len(g.UVs) != 36*2 {
		t.Fatalf("contagens inesperadas: %d vértices, %d flags", g.VertexCount(), len(g.Flags))
	}
	if g.Texture != "oak" {
		t.Errorf("textura %q, esperado oak", g.Texture)
	}
	for i, v := range g.Vertices {
		if v != 0 && v != 1 {
			t.Fatalf("coordenada %d = %v fora do bloco unitário", i, v)
		}
	}
}

func TestTesselateMissingTextureAborts(t *testing.T) {
	cube := mustShape(t, cubeJSON)
	cube.Textures = nil
	_, err := NewTesselator(mapShapes{}).TesselateShape(cube, ShapeTextureSource{Shape: cube})
	if !errors.Is(err, ErrNoTexture) {
		t.Fatalf("esperado ErrNoTexture, veio %v", err)
	}
}

func TestContainerTextureSource(t *testing.T) {
	liquid := mustShape(t, liquidJSON)
	props := &catalog.LiquidProps{Code: "waterportion", ItemsPerLitre: 100, Texture: "water", Color: [4]uint8{60, 110, 200, 200}}
	src := NewContainerTextureSource(items.New(items.ClassItem, "waterportion", 500), props)

	g, err := NewTesselator(mapShapes{}).TesselateShape(liquid, src)
	if err != nil {
		t.Fatal(err)
	}
	if g.Texture != "water" || g.Colors[0] != 60 || g.Colors[3] != 200 {
		t.Fatalf("textura/cor do conteúdo não aplicadas: %q %v", g.Texture, g.Colors[:4])
	}
	if !g.HasFlag(FlagLiquidWave) {
		t.Fatal("flags do elemento deveriam chegar aos vértices")
	}

	noTex := NewContainerTextureSource(items.New(items.ClassItem, "milkportion", 1), &catalog.LiquidProps{})
	if _, err := NewTesselator(mapShapes{}).TesselateShape(liquid, noTex); !errors.Is(err, ErrNoTexture) {
		t.Fatalf("props sem textura deveriam falhar, veio %v", err)
	}
}

func TestTesselateItemAndBlock(t *testing.T) {
	cube := mustShape(t, cubeJSON)
	tess := NewTesselator(mapShapes{
		shapes: map[string]*Shape{"winch/bucket": cube},
		blocks: map[string]string{"woodbucket": "winch/bucket"},
	})
	if _, err := tess.TesselateBlock(items.New(items.ClassBlock, "woodbucket", 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := tess.TesselateItem(items.New(items.ClassItem, "woodbucket", 1)); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("item sem regra deveria dar ErrShapeNotFound, veio %v", err)
	}
	if _, err := tess.TesselateBlock(items.New(items.ClassBlock, "claypot", 1)); !errors.Is(err, ErrShapeNotFound) {
		t.Fatalf("bloco sem regra deveria dar ErrShapeNotFound, veio %v", err)
	}
}
