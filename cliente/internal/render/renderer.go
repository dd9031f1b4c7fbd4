package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"WinchWorks/cliente/internal/meshing"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

const deg2rad = math.Pi / 180

// ShapeDrum é o caminho do shape do tambor.
const ShapeDrum = "winch/drum"

// StateSource fornece o estado de movimento a cada frame (a réplica local da entidade).
type StateSource interface {
	Snapshot() winch.MotionState
}

// Frame carrega o que o renderizador precisa de um frame.
// View é relativa à origem da câmera; o modelo é transladado por (pos - câmera).
type Frame struct {
	Delta      float32
	CameraPos  mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// automatedSign mapeia a face montada para o sinal aplicado ao ângulo da rede.
// O primeiro valor multiplica o ângulo; usesTurnSign indica se o sentido da rede entra na conta.
var automatedSign = [4]struct {
	sign         float32
	usesTurnSign bool
}{
	util.FacingNorth: {-1, false},
	util.FacingEast:  {-1, true},
	util.FacingSouth: {1, false},
	util.FacingWest:  {1, true},
}

// ResolveAutomatedAngle converte o ângulo da rede mecânica no ângulo desenhado do tambor.
// Faces verticais caem no caso padrão (norte).
func ResolveAutomatedAngle(facing util.Facing, networkAngle, turnSign float32) float32 {
	entry := automatedSign[util.FacingNorth]
	if facing.IsHorizontal() {
		entry = automatedSign[facing]
	}
	angle := networkAngle * entry.sign
	if entry.usesTurnSign {
		angle *= turnSign
	}
	return angle
}

// WinchRenderer desenha um guincho: o tambor sempre, o balde e o líquido quando há recipiente.
type WinchRenderer struct {
	Pos          util.BlockPos
	Facing       util.Facing
	ShouldRender bool

	tuning  config.WinchTuning
	catalog *catalog.Catalog
	state   StateSource
	drawer  Drawer

	drum   meshSlot
	bucket *BucketMeshCache
	liquid *LiquidMeshCache

	angle    float32
	disposed bool
}

// NewWinchRenderer gera e envia a malha do tambor. Sem tambor não há renderizador.
func NewWinchRenderer(pos util.BlockPos, facing util.Facing, state StateSource, svc Services, tuning config.WinchTuning, cat *catalog.Catalog) (*WinchRenderer, error) {
	shape, err := svc.Tesselator.ShapeAt(ShapeDrum)
	if err != nil {
		return nil, fmt.Errorf("shape do tambor: %w", err)
	}
	geo, err := svc.Tesselator.TesselateShape(shape, meshing.ShapeTextureSource{Shape: shape})
	if err != nil {
		return nil, fmt.Errorf("tesselando tambor: %w", err)
	}

	r := &WinchRenderer{
		Pos:          pos,
		Facing:       facing,
		ShouldRender: true,
		tuning:       tuning,
		catalog:      cat,
		state:        state,
		drawer:       svc.Drawer,
		drum:         meshSlot{up: svc.Uploader},
		bucket:       NewBucketMeshCache(svc, tuning.DepthLerpRate),
		liquid:       NewLiquidMeshCache(svc, cat, pos),
	}
	if err := r.drum.replace(geo); err != nil {
		return nil, fmt.Errorf("enviando tambor: %w", err)
	}
	return r, nil
}

// Angle retorna o ângulo atual do tambor (radianos).
func (r *WinchRenderer) Angle() float32 { return r.angle }

// BucketDepth retorna a profundidade desenhada do balde.
func (r *WinchRenderer) BucketDepth() float32 { return r.bucket.Depth.Value() }

// OnRenderFrame resolve o ângulo, atualiza os caches e desenha.
func (r *WinchRenderer) OnRenderFrame(f Frame) {
	drum, ok := r.drum.get()
	if !ok || !r.ShouldRender || r.disposed {
		return
	}

	center := mgl32.Vec3{float32(r.Pos.X) + 0.5, float32(r.Pos.Y) + 0.5, float32(r.Pos.Z) + 0.5}
	if r.tuning.RenderRange > 0 && center.Sub(f.CameraPos).Len() > r.tuning.RenderRange {
		return
	}

	yaw := r.Facing.Yaw()
	s := r.state.Snapshot()

	switch {
	case s.IsTurningAutomated:
		r.angle = ResolveAutomatedAngle(r.Facing, s.NetworkAngle, s.TurnDir.Sign())
	case s.IsTurningManually && s.CanMove():
		dir := float32(1)
		if s.IsRaising {
			dir = -1
		}
		r.angle += f.Delta * r.tuning.ManualAngularSpeedDeg * deg2rad * dir
	}

	rel := mgl32.Vec3{float32(r.Pos.X), float32(r.Pos.Y), float32(r.Pos.Z)}.Sub(f.CameraPos)

	model := mgl32.Translate3D(rel.X(), rel.Y(), rel.Z()).
		Mul4(mgl32.Translate3D(0.5, 0.5, 0.5)).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.HomogRotate3DX(r.angle)).
		Mul4(mgl32.Translate3D(-0.5, 0, -0.5))
	r.drawer.DrawMesh(drum, model, f.View, f.Projection)

	// Pilha sem classe ou código é tratada como slot vazio.
	if !s.Slot.Resolved() {
		r.bucket.Release()
		r.liquid.Release()
		return
	}

	r.bucket.Update(s.Slot, s.BucketDepth, f.Delta)
	r.liquid.Update(s.Slot)

	bucket, ok := r.bucket.Handle()
	if !ok {
		return
	}
	depth := r.bucket.Depth.Value()
	r.drawer.DrawMesh(bucket, hangingModel(rel, yaw, -depth), f.View, f.Projection)

	if liquid, ok := r.liquid.Handle(); ok {
		h := r.liquidHeight(s.Slot)
		r.drawer.DrawMesh(liquid, hangingModel(rel, yaw, h-depth), f.View, f.Projection)
	}
}

// hangingModel posiciona algo pendurado abaixo do guincho, girado só pela face montada.
func hangingModel(rel mgl32.Vec3, yaw, dy float32) mgl32.Mat4 {
	return mgl32.Translate3D(rel.X(), rel.Y()+dy, rel.Z()).
		Mul4(mgl32.Translate3D(0.5, 0, 0.5)).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Translate3D(-0.5, 0, -0.5))
}

// liquidHeight é a altura da coluna de líquido: quantidade / (itens por litro × capacidade) × altura máxima.
func (r *WinchRenderer) liquidHeight(container *items.ItemStack) float32 {
	if !container.HasContents() {
		return 0
	}
	props := r.catalog.ContainableProps(container.Contents)
	if props == nil {
		return 0
	}
	capacity := r.catalog.CapacityLitres(container, r.tuning.DefaultCapacityLitres)
	if props.ItemsPerLitre <= 0 || capacity <= 0 {
		return 0
	}
	return float32(container.Contents.StackSize) / (props.ItemsPerLitre * capacity) * r.tuning.MaxLiquidHeight
}

// Dispose libera todas as malhas. Chamadas repetidas não fazem nada.
func (r *WinchRenderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.drum.release()
	r.bucket.Release()
	r.liquid.Release()
}
