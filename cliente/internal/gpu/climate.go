package gpu

import (
	"image/color"
	"log"
	"path/filepath"
	"slices"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"WinchWorks/cliente/internal/render"
	"WinchWorks/shared/util"
)

// ClimateMaps amostra mapas de cor de clima (PNG em assets/colormaps/<nome>.png).
// O mapa se repete no plano XZ do mundo.
type ClimateMaps struct {
	dir string

	mu   sync.Mutex
	maps map[string]*climateMap
}

type climateMap struct {
	w, h   int32
	pixels []color.RGBA
}

var _ render.ClimateColors = (*ClimateMaps)(nil)

func NewClimateMaps(assetsDir string) *ClimateMaps {
	return &ClimateMaps{
		dir:  filepath.Join(assetsDir, "colormaps"),
		maps: make(map[string]*climateMap),
	}
}

// ColorAt retorna a cor do mapa na posição. false se o mapa não existe.
func (c *ClimateMaps) ColorAt(name string, pos util.BlockPos) ([4]uint8, bool) {
	m := c.load(name)
	if m == nil {
		return [4]uint8{}, false
	}
	x := floorMod(pos.X, m.w)
	z := floorMod(pos.Z, m.h)
	p := m.pixels[z*m.w+x]
	return [4]uint8{p.R, p.G, p.B, p.A}, true
}

func (c *ClimateMaps) load(name string) *climateMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.maps[name]; ok {
		return m
	}

	path := filepath.Join(c.dir, name+".png")
	img := rl.LoadImage(path)
	var m *climateMap
	if img != nil && img.Width > 0 && img.Height > 0 {
		cols := rl.LoadImageColors(img)
		m = &climateMap{w: img.Width, h: img.Height, pixels: slices.Clone(cols)}
		rl.UnloadImageColors(cols)
		rl.UnloadImage(img)
		log.Printf("[GPU] Mapa de clima carregado: %s (%dx%d)", path, m.w, m.h)
	} else {
		log.Printf("[GPU] Mapa de clima ausente: %s", path)
	}
	// nil também fica memorizado
	c.maps[name] = m
	return m
}

func floorMod(v, n int32) int32 {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
