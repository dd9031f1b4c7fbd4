package meshing

import (
	"slices"
	"sync"
)

// FlagLiquidWave marca vértices que o shader de água anima. Precisa ser limpo em
// líquidos dentro de recipientes, senão o conteúdo do balde ondula.
const FlagLiquidWave int32 = 1 << 12

// GeometryData contém os buffers de vértices para uma malha.
// Não indexada: cada quad vira dois triângulos (6 vértices).
type GeometryData struct {
	Vertices []float32
	Normals  []float32
	Colors   []uint8
	UVs      []float32
	Flags    []int32 // Um por vértice
	Texture  string  // Textura usada pela malha inteira
}

// VertexCount retorna o número de vértices.
func (g GeometryData) VertexCount() int {
	return len(g.Vertices) / 3
}

// Empty indica se não há nada para desenhar.
func (g GeometryData) Empty() bool {
	return len(g.Vertices) == 0
}

// HasFlag indica se algum vértice carrega a flag.
func (g GeometryData) HasFlag(flag int32) bool {
	for _, f := range g.Flags {
		if f&flag != 0 {
			return true
		}
	}
	return false
}

// Clone cria uma cópia profunda dos dados para evitar corrupção de memória.
func (g GeometryData) Clone() GeometryData {
	return GeometryData{
		Vertices: slices.Clone(g.Vertices),
		Normals:  slices.Clone(g.Normals),
		Colors:   slices.Clone(g.Colors),
		UVs:      slices.Clone(g.UVs),
		Flags:    slices.Clone(g.Flags),
		Texture:  g.Texture,
	}
}

// ApplyClimateTint multiplica cada canal RGBA de todos os vértices pelo canal
// correspondente da cor do clima (escala inteira, /255).
func ApplyClimateTint(g *GeometryData, rgba [4]uint8) {
	for i := range g.Colors {
		g.Colors[i] = uint8(int(g.Colors[i]) * int(rgba[i%4]) / 255)
	}
}

// ClearRenderFlag remove a flag de todos os vértices.
func ClearRenderFlag(g *GeometryData, flag int32) {
	for i := range g.Flags {
		g.Flags[i] &^= flag
	}
}

// Pool global para reciclar MeshBuffers e evitar alocação excessiva (GC Pressure)
var meshBufferPool = sync.Pool{
	New: func() interface{} {
		return &MeshBuffer{
			Geometry: GeometryData{
				Vertices: make([]float32, 0, 1024),
				Normals:  make([]float32, 0, 1024),
				Colors:   make([]uint8, 0, 1024),
				UVs:      make([]float32, 0, 512),
				Flags:    make([]int32, 0, 256),
			},
		}
	},
}

// GetMeshBuffer aloca ou recicla um buffer vazio para meshing.
func GetMeshBuffer() *MeshBuffer {
	return meshBufferPool.Get().(*MeshBuffer)
}

// PutMeshBuffer zera os slices e devolve a memória para o Pool.
// Quem chamou não pode mais usar b.Geometry sem antes cloná-lo.
func PutMeshBuffer(b *MeshBuffer) {
	if b == nil {
		return
	}
	b.Geometry.Vertices = b.Geometry.Vertices[:0]
	b.Geometry.Normals = b.Geometry.Normals[:0]
	b.Geometry.Colors = b.Geometry.Colors[:0]
	b.Geometry.UVs = b.Geometry.UVs[:0]
	b.Geometry.Flags = b.Geometry.Flags[:0]
	b.Geometry.Texture = ""
	meshBufferPool.Put(b)
}

// MeshBuffer auxilia na construção de malhas dinâmicas.
type MeshBuffer struct {
	Geometry GeometryData
}

// AddFaceUV adiciona um quad (v1..v4 em sentido anti-horário) com UVs, normal, cor e flags.
func (b *MeshBuffer) AddFaceUV(v1, v2, v3, v4 [3]float32, uv1, uv2, uv3, uv4 [2]float32, n [3]float32, c [4]uint8, flags int32) {
	// Triângulo 1 (v1, v2, v3)
	b.addVertexUV(v1, uv1, n, c, flags)
	b.addVertexUV(v2, uv2, n, c, flags)
	b.addVertexUV(v3, uv3, n, c, flags)

	// Triângulo 2 (v1, v3, v4)
	b.addVertexUV(v1, uv1, n, c, flags)
	b.addVertexUV(v3, uv3, n, c, flags)
	b.addVertexUV(v4, uv4, n, c, flags)
}

func (b *MeshBuffer) addVertexUV(v [3]float32, uv [2]float32, n [3]float32, c [4]uint8, flags int32) {
	b.Geometry.Vertices = append(b.Geometry.Vertices, v[0], v[1], v[2])
	b.Geometry.Normals = append(b.Geometry.Normals, n[0], n[1], n[2])
	b.Geometry.Colors = append(b.Geometry.Colors, c[0], c[1], c[2], c[3])
	b.Geometry.UVs = append(b.Geometry.UVs, uv[0], uv[1])
	b.Geometry.Flags = append(b.Geometry.Flags, flags)
}
