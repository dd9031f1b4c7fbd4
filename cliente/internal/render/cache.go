package render

import (
	"fmt"
	"log"

	"WinchWorks/cliente/internal/meshing"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

// Caminhos dos shapes de conteúdo do balde.
const (
	ShapeContents       = "winch/bucket/contents"       // líquidos opacos
	ShapeLiquidContents = "winch/bucket/liquidcontents" // líquidos translúcidos
)

// BucketMeshCache guarda a malha do recipiente pendurado e a profundidade desenhada.
// Só reconstrói quando a identidade da pilha muda (igualdade ignorando atributos voláteis).
type BucketMeshCache struct {
	tess   Tesselator
	slot   meshSlot
	last   *items.ItemStack
	failed *items.ItemStack
	Depth  DepthInterpolator
}

func NewBucketMeshCache(svc Services, lerpRate float32) *BucketMeshCache {
	return &BucketMeshCache{
		tess:  svc.Tesselator,
		slot:  meshSlot{up: svc.Uploader},
		Depth: DepthInterpolator{Rate: lerpRate},
	}
}

// Update sincroniza a malha com a pilha atual. Retorna true se a malha foi reconstruída.
// Sem pilha, libera tudo. Pilha igual à memorizada: só a profundidade avança.
func (c *BucketMeshCache) Update(stack *items.ItemStack, targetDepth, dt float32) bool {
	if stack == nil {
		c.Release()
		return false
	}
	// Pilha memorizada, ou que já falhou (sem repetir o log a cada frame): só a profundidade anda.
	if (c.last != nil && stack.SameAs(c.last)) || (c.failed != nil && stack.SameAs(c.failed)) {
		c.Depth.SetTarget(targetDepth)
		c.Depth.Advance(dt)
		return false
	}

	geo, err := c.build(stack)
	if err != nil {
		log.Printf("[WinchRenderer] Malha do balde %s não gerada: %v", stack.Code, err)
		c.failed = stack.Clone()
		return false
	}
	c.failed = nil

	if err := c.slot.replace(geo); err != nil {
		log.Printf("[WinchRenderer] Falha ao enviar malha do balde: %v", err)
		c.last = nil
		return false
	}
	c.last = stack.Clone()
	c.Depth.Snap(targetDepth)
	return true
}

func (c *BucketMeshCache) build(stack *items.ItemStack) (meshing.GeometryData, error) {
	var (
		geo meshing.GeometryData
		err error
	)
	switch stack.Class {
	case items.ClassItem:
		geo, err = c.tess.TesselateItem(stack)
	case items.ClassBlock:
		geo, err = c.tess.TesselateBlock(stack)
	default:
		return geo, fmt.Errorf("classe %s não resolvida", stack.Class)
	}
	if err != nil {
		return geo, err
	}
	if geo.Empty() {
		return geo, meshing.ErrEmptyGeometry
	}
	return geo, nil
}

// Handle retorna a malha atual, se houver.
func (c *BucketMeshCache) Handle() (MeshHandle, bool) { return c.slot.get() }

// Release libera a malha e esquece a pilha memorizada.
func (c *BucketMeshCache) Release() {
	c.slot.release()
	c.last = nil
	c.failed = nil
}

// LiquidMeshCache guarda a malha do conteúdo líquido do recipiente.
type LiquidMeshCache struct {
	tess    Tesselator
	climate ClimateColors
	catalog *catalog.Catalog
	pos     util.BlockPos

	slot   meshSlot
	last   *items.ItemStack
	failed *items.ItemStack
}

func NewLiquidMeshCache(svc Services, cat *catalog.Catalog, pos util.BlockPos) *LiquidMeshCache {
	return &LiquidMeshCache{
		tess:    svc.Tesselator,
		climate: svc.Climate,
		catalog: cat,
		pos:     pos,
		slot:    meshSlot{up: svc.Uploader},
	}
}

// Update sincroniza a malha com o conteúdo do recipiente. Retorna true se reconstruiu.
// Recipientes que não exibem líquido, ou vazios, liberam a malha.
func (c *LiquidMeshCache) Update(container *items.ItemStack) bool {
	if !c.catalog.IsLiquidContainer(container) || !container.HasContents() {
		c.Release()
		return false
	}
	contents := container.Contents
	if c.last != nil && contents.SameAs(c.last) {
		return false
	}
	if c.failed != nil && contents.SameAs(c.failed) {
		return false
	}

	geo, err := c.build(contents)
	if err != nil {
		log.Printf("[WinchRenderer] Malha do líquido %s não gerada: %v", contents.Code, err)
		c.failed = contents.Clone()
		return false
	}
	c.failed = nil

	if err := c.slot.replace(geo); err != nil {
		log.Printf("[WinchRenderer] Falha ao enviar malha do líquido: %v", err)
		c.last = nil
		return false
	}
	c.last = contents.Clone()
	return true
}

func (c *LiquidMeshCache) build(contents *items.ItemStack) (meshing.GeometryData, error) {
	props := c.catalog.ContainableProps(contents)
	if props == nil {
		return meshing.GeometryData{}, fmt.Errorf("sem propriedades de líquido")
	}
	path := ShapeLiquidContents
	if props.IsOpaque {
		path = ShapeContents
	}
	shape, err := c.tess.ShapeAt(path)
	if err != nil {
		return meshing.GeometryData{}, err
	}
	geo, err := c.tess.TesselateShape(shape, meshing.NewContainerTextureSource(contents, props))
	if err != nil {
		return geo, err
	}
	if geo.Empty() {
		return geo, meshing.ErrEmptyGeometry
	}

	if props.ClimateColorMap != "" && c.climate != nil {
		if rgba, ok := c.climate.ColorAt(props.ClimateColorMap, c.pos); ok {
			meshing.ApplyClimateTint(&geo, rgba)
		}
	}
	meshing.ClearRenderFlag(&geo, meshing.FlagLiquidWave)
	return geo, nil
}

// Handle retorna a malha atual, se houver.
func (c *LiquidMeshCache) Handle() (MeshHandle, bool) { return c.slot.get() }

// Release libera a malha e esquece o conteúdo memorizado.
func (c *LiquidMeshCache) Release() {
	c.slot.release()
	c.last = nil
	c.failed = nil
}
