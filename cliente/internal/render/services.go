// Package render desenha o guincho: tambor, balde e o líquido dentro dele.
// O pipeline gráfico fica atrás das interfaces deste arquivo, o que mantém o pacote
// livre de cgo e testável.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"WinchWorks/cliente/internal/meshing"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

// MeshHandle identifica uma malha enviada à GPU. Opaco para o renderizador.
type MeshHandle uint32

// Uploader envia geometria para a GPU e libera malhas.
type Uploader interface {
	Upload(geo meshing.GeometryData) (MeshHandle, error)
	Release(h MeshHandle)
}

// Drawer executa o shader com as matrizes dadas.
type Drawer interface {
	DrawMesh(h MeshHandle, model, view, projection mgl32.Mat4)
}

// Tesselator busca shapes e gera geometria.
type Tesselator interface {
	ShapeAt(path string) (*meshing.Shape, error)
	TesselateShape(shape *meshing.Shape, src meshing.TextureSource) (meshing.GeometryData, error)
	TesselateItem(stack *items.ItemStack) (meshing.GeometryData, error)
	TesselateBlock(stack *items.ItemStack) (meshing.GeometryData, error)
}

// ClimateColors resolve a cor de um mapa de clima numa posição do mundo.
type ClimateColors interface {
	ColorAt(colorMap string, pos util.BlockPos) ([4]uint8, bool)
}

// Services agrupa os serviços externos usados pelo renderizador.
type Services struct {
	Uploader   Uploader
	Drawer     Drawer
	Tesselator Tesselator
	Climate    ClimateColors // Opcional
}

// meshSlot é dono exclusivo de zero ou um handle. A troca é sempre libera-depois-adquire.
type meshSlot struct {
	up     Uploader
	handle MeshHandle
	held   bool
}

// replace libera o handle atual e envia a nova geometria.
// Se o envio falhar o slot fica vazio.
func (s *meshSlot) replace(geo meshing.GeometryData) error {
	s.release()
	h, err := s.up.Upload(geo)
	if err != nil {
		return err
	}
	s.handle = h
	s.held = true
	return nil
}

func (s *meshSlot) release() {
	if !s.held {
		return
	}
	s.up.Release(s.handle)
	s.held = false
	s.handle = 0
}

func (s *meshSlot) get() (MeshHandle, bool) {
	return s.handle, s.held
}
