package meshing

import (
	"errors"
	"fmt"

	"WinchWorks/shared/items"
)

var (
	ErrShapeNotFound = errors.New("shape não encontrado")
	ErrNoTexture     = errors.New("textura não resolvida")
	ErrEmptyGeometry = errors.New("geometria vazia")
)

// ShapeSource fornece shapes por caminho e as regras código -> shape de itens e blocos.
type ShapeSource interface {
	ShapeAt(path string) (*Shape, error)
	ItemShape(code string) (string, bool)
	BlockShape(code string) (string, bool)
}

// Tesselator transforma shapes em GeometryData.
type Tesselator struct {
	Shapes ShapeSource
}

// NewTesselator cria um tesselador sobre a fonte de shapes.
func NewTesselator(shapes ShapeSource) *Tesselator {
	return &Tesselator{Shapes: shapes}
}

// ShapeAt busca um shape pelo caminho.
func (t *Tesselator) ShapeAt(path string) (*Shape, error) {
	s, err := t.Shapes.ShapeAt(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrShapeNotFound, path, err)
	}
	return s, nil
}

// TesselateShape gera a geometria de um shape. Qualquer face sem textura aborta tudo:
// nunca devolve malha parcial.
func (t *Tesselator) TesselateShape(shape *Shape, src TextureSource) (GeometryData, error) {
	if shape == nil {
		return GeometryData{}, ErrShapeNotFound
	}
	buf := GetMeshBuffer()
	defer PutMeshBuffer(buf)

	for _, el := range shape.Elements {
		a := [3]float32{el.From[0] / 16, el.From[1] / 16, el.From[2] / 16}
		b := [3]float32{el.To[0] / 16, el.To[1] / 16, el.To[2] / 16}
		for _, name := range faceOrder {
			face, ok := el.Faces[name]
			if !ok {
				continue
			}
			tex, ok := src.Texture(face.Texture)
			if !ok {
				return GeometryData{}, fmt.Errorf("%w: %q", ErrNoTexture, face.Texture)
			}
			if buf.Geometry.Texture == "" {
				buf.Geometry.Texture = tex.Name
			}
			u0, v0, u1, v1 := face.UV[0]/16, face.UV[1]/16, face.UV[2]/16, face.UV[3]/16
			c1, c2, c3, c4 := faceCorners(name, a, b)
			buf.AddFaceUV(c1, c2, c3, c4,
				[2]float32{u0, v1}, [2]float32{u1, v1}, [2]float32{u1, v0}, [2]float32{u0, v0},
				faceNormals[name], tex.Color, el.Flags)
		}
	}

	if buf.Geometry.Empty() {
		return GeometryData{}, ErrEmptyGeometry
	}
	return buf.Geometry.Clone(), nil
}

// TesselateItem gera a malha de um item pelo shape registrado para o código.
func (t *Tesselator) TesselateItem(stack *items.ItemStack) (GeometryData, error) {
	if stack == nil {
		return GeometryData{}, ErrShapeNotFound
	}
	path, ok := t.Shapes.ItemShape(stack.Code)
	if !ok {
		return GeometryData{}, fmt.Errorf("%w: item %s", ErrShapeNotFound, stack.Code)
	}
	return t.tesselatePath(path)
}

// TesselateBlock gera a malha de um bloco pelo shape registrado para o código.
func (t *Tesselator) TesselateBlock(stack *items.ItemStack) (GeometryData, error) {
	if stack == nil {
		return GeometryData{}, ErrShapeNotFound
	}
	path, ok := t.Shapes.BlockShape(stack.Code)
	if !ok {
		return GeometryData{}, fmt.Errorf("%w: bloco %s", ErrShapeNotFound, stack.Code)
	}
	return t.tesselatePath(path)
}

func (t *Tesselator) tesselatePath(path string) (GeometryData, error) {
	shape, err := t.ShapeAt(path)
	if err != nil {
		return GeometryData{}, err
	}
	return t.TesselateShape(shape, ShapeTextureSource{Shape: shape})
}
