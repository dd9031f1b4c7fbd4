// Package gpu implementa os serviços de malha do renderizador sobre a raylib.
package gpu

/*
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"log"
	"path/filepath"
	"sync"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"WinchWorks/cliente/internal/meshing"
	"WinchWorks/cliente/internal/render"
)

// ErrNoWindow indica que não há contexto OpenGL para enviar malhas.
var ErrNoWindow = errors.New("janela não inicializada")

type gpuModel struct {
	model rl.Model
	water bool
}

// Host é dono de todos os modelos enviados à GPU. Só deve ser usado na thread da janela.
type Host struct {
	mu     sync.Mutex
	models map[render.MeshHandle]gpuModel
	next   render.MeshHandle

	BlockShader rl.Shader
	WaterShader rl.Shader

	waterTimeLoc   int32
	waterCamPosLoc int32

	texDir   string
	Textures map[string]rl.Texture2D
}

var (
	_ render.Uploader = (*Host)(nil)
	_ render.Drawer   = (*Host)(nil)
)

// NewHost compila os shaders. Deve ser chamado depois de InitWindow.
func NewHost(assetsDir string) *Host {
	h := &Host{
		models:   make(map[render.MeshHandle]gpuModel),
		texDir:   filepath.Join(assetsDir, "textures"),
		Textures: make(map[string]rl.Texture2D),
	}

	if rl.IsWindowReady() {
		h.BlockShader = rl.LoadShaderFromMemory(blockVertexShader, blockFragmentShader)
		h.WaterShader = rl.LoadShaderFromMemory(waterVertexShader, waterFragmentShader)

		// Locs aponta para um array em C de 32 posições
		locs := unsafe.Slice(h.BlockShader.Locs, 32)
		locs[0] = rl.GetShaderLocation(h.BlockShader, "texture0")    // SHADER_LOC_MAP_DIFFUSE
		locs[12] = rl.GetShaderLocation(h.BlockShader, "colDiffuse") // SHADER_LOC_COLOR_DIFFUSE

		locsW := unsafe.Slice(h.WaterShader.Locs, 32)
		locsW[0] = rl.GetShaderLocation(h.WaterShader, "texture0")
		locsW[12] = rl.GetShaderLocation(h.WaterShader, "colDiffuse")

		h.waterTimeLoc = rl.GetShaderLocation(h.WaterShader, "time")
		h.waterCamPosLoc = rl.GetShaderLocation(h.WaterShader, "camPos")
	}
	return h
}

// Upload converte a geometria em um modelo raylib. A cópia em RAM é liberada logo após o envio.
func (h *Host) Upload(geo meshing.GeometryData) (render.MeshHandle, error) {
	if !rl.IsWindowReady() {
		return 0, ErrNoWindow
	}
	if geo.Empty() {
		return 0, meshing.ErrEmptyGeometry
	}

	mesh := geometryToMesh(geo)
	rl.UploadMesh(&mesh, false)
	freeMeshRAM(&mesh)
	model := rl.LoadModelFromMesh(mesh)

	// Só malhas marcadas com a flag de onda recebem o shader animado.
	water := geo.HasFlag(meshing.FlagLiquidWave) && h.WaterShader.ID != 0
	if model.MaterialCount > 0 {
		materials := unsafe.Slice(model.Materials, model.MaterialCount)
		if water {
			materials[0].Shader = h.WaterShader
		} else if h.BlockShader.ID != 0 {
			materials[0].Shader = h.BlockShader
		}
		if tex, ok := h.texture(geo.Texture); ok {
			rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, tex)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.models[h.next] = gpuModel{model: model, water: water}
	return h.next, nil
}

// Release descarrega o modelo. Handles desconhecidos são ignorados com um aviso.
func (h *Host) Release(handle render.MeshHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.models[handle]
	if !ok {
		log.Printf("[GPU] AVISO: liberação de malha inexistente %d", handle)
		return
	}
	rl.UnloadModel(m.model)
	delete(h.models, handle)
}

// DrawMesh desenha com matrizes explícitas. A view é relativa à origem da câmera.
func (h *Host) DrawMesh(handle render.MeshHandle, model, view, projection mgl32.Mat4) {
	h.mu.Lock()
	m, ok := h.models[handle]
	h.mu.Unlock()
	if !ok || m.model.MeshCount == 0 {
		return
	}

	// O que está no batch foi enfileirado com as matrizes da câmera raylib.
	rl.DrawRenderBatchActive()
	rl.SetMatrixProjection(toMatrix(projection))
	rl.SetMatrixModelview(toMatrix(view))

	meshes := unsafe.Slice(m.model.Meshes, m.model.MeshCount)
	materials := unsafe.Slice(m.model.Materials, m.model.MaterialCount)
	if m.water {
		rl.BeginBlendMode(rl.BlendAlpha)
		rl.DrawMesh(meshes[0], materials[0], toMatrix(model))
		rl.EndBlendMode()
		return
	}
	rl.DrawMesh(meshes[0], materials[0], toMatrix(model))
}

// BeginFrame atualiza os uniforms do shader de água.
func (h *Host) BeginFrame() {
	t := float32(rl.GetTime())
	if h.WaterShader.ID != 0 {
		rl.SetShaderValue(h.WaterShader, h.waterTimeLoc, []float32{t}, rl.ShaderUniformFloat)
		// Desenhamos relativos à câmera: ela está sempre na origem.
		rl.SetShaderValue(h.WaterShader, h.waterCamPosLoc, []float32{0, 0, 0}, rl.ShaderUniformVec3)
	}
}

// Live retorna quantos modelos estão na GPU.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.models)
}

// Unload descarrega tudo, incluindo texturas e shaders.
func (h *Host) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.models) > 0 {
		log.Printf("[GPU] %d malhas ainda vivas no encerramento", len(h.models))
	}
	for _, m := range h.models {
		rl.UnloadModel(m.model)
	}
	h.models = make(map[render.MeshHandle]gpuModel)
	for _, tex := range h.Textures {
		rl.UnloadTexture(tex)
	}
	h.Textures = make(map[string]rl.Texture2D)
	if h.BlockShader.ID != 0 {
		rl.UnloadShader(h.BlockShader)
	}
	if h.WaterShader.ID != 0 {
		rl.UnloadShader(h.WaterShader)
	}
}

func (h *Host) texture(name string) (rl.Texture2D, bool) {
	if name == "" {
		return rl.Texture2D{}, false
	}
	if tex, ok := h.Textures[name]; ok {
		return tex, tex.ID != 0
	}
	path := filepath.Join(h.texDir, name+".png")
	tex := rl.LoadTexture(path)
	if tex.ID != 0 {
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
		rl.SetTextureWrap(tex, rl.WrapRepeat)
		log.Printf("[GPU] Textura carregada: %s", path)
	} else {
		log.Printf("[GPU] FALHA ao carregar textura: %s", path)
	}
	// Falhas também ficam no mapa para não tentar de novo a cada malha.
	h.Textures[name] = tex
	return tex, tex.ID != 0
}

// toMatrix converte uma matriz mgl32 (coluna-major) para rl.Matrix.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}

func geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	vCount := int32(len(data.Vertices) / 3)
	mesh.VertexCount = vCount
	mesh.TriangleCount = vCount / 3

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Colors) > 0 {
		mesh.Colors = (*uint8)(copyToC(unsafe.Pointer(&data.Colors[0]), len(data.Colors)))
	}
	if len(data.UVs) > 0 {
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&data.UVs[0]), len(data.UVs)*4))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(ptr), size), unsafe.Slice((*byte)(data), size))
	return ptr
}

// freeMeshRAM libera a memória C da malha após o envio para a GPU.
func freeMeshRAM(mesh *rl.Mesh) {
	if mesh.Vertices != nil {
		C.free(unsafe.Pointer(mesh.Vertices))
		mesh.Vertices = nil
	}
	if mesh.Normals != nil {
		C.free(unsafe.Pointer(mesh.Normals))
		mesh.Normals = nil
	}
	if mesh.Colors != nil {
		C.free(unsafe.Pointer(mesh.Colors))
		mesh.Colors = nil
	}
	if mesh.Texcoords != nil {
		C.free(unsafe.Pointer(mesh.Texcoords))
		mesh.Texcoords = nil
	}
}
