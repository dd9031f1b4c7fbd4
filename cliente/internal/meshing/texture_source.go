package meshing

import (
	"strings"

	"WinchWorks/shared/catalog"
	"WinchWorks/shared/items"
)

// TextureRef é uma textura resolvida para uma face, com a cor base dos vértices.
type TextureRef struct {
	Name  string
	Color [4]uint8
}

var white = [4]uint8{255, 255, 255, 255}

// TextureSource resolve a chave de textura de uma face.
type TextureSource interface {
	Texture(key string) (TextureRef, bool)
}

// ShapeTextureSource resolve pelas texturas declaradas no próprio shape.
type ShapeTextureSource struct {
	Shape *Shape
}

func (s ShapeTextureSource) Texture(key string) (TextureRef, bool) {
	name, ok := s.Shape.Textures[strings.TrimPrefix(key, "#")]
	if !ok || name == "" {
		return TextureRef{}, false
	}
	return TextureRef{Name: name, Color: white}, true
}

// ContainerTextureSource pinta todas as faces com a textura do conteúdo de um recipiente.
type ContainerTextureSource struct {
	Contents *items.ItemStack
	Props    *catalog.LiquidProps
}

// NewContainerTextureSource cria o resolvedor para o conteúdo de um recipiente.
func NewContainerTextureSource(contents *items.ItemStack, props *catalog.LiquidProps) ContainerTextureSource {
	return ContainerTextureSource{Contents: contents, Props: props}
}

func (s ContainerTextureSource) Texture(string) (TextureRef, bool) {
	if s.Contents == nil || s.Props == nil || s.Props.Texture == "" {
		return TextureRef{}, false
	}
	c := s.Props.Color
	if c == ([4]uint8{}) {
		c = white
	}
	return TextureRef{Name: s.Props.Texture, Color: c}, true
}
