// Package camera implementa a câmera orbital usada para olhar o guincho e o poço.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"WinchWorks/shared/util"
)

// Mode é o tipo de projeção.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// Planos de recorte da projeção (mesmos valores padrão da rlgl).
const (
	nearPlane = 0.01
	farPlane  = 1000.0
)

// Limites de elevação: nunca passa do topo nem desce abaixo do horizonte.
const (
	minPitch = -89 * rl.Deg2rad
	maxPitch = -5 * rl.Deg2rad
)

// Orbit gira em volta de um ponto focal. O foco e a distância são suavizados;
// os ângulos respondem na hora ao mouse.
type Orbit struct {
	RLCamera rl.Camera3D
	Mode     Mode

	MinDistance float32
	MaxDistance float32
	PanSpeed    float32 // blocos por segundo a 10 blocos de distância
	ClimbSpeed  float32 // blocos por segundo em Q/E
	OrbitSpeed  float32 // radianos por pixel
	ZoomStep    float32
	Smoothing   float32 // fração do caminho percorrida por frame a 60 FPS

	Yaw   float32
	Pitch float32

	focusGoal    mgl32.Vec3
	focus        mgl32.Vec3
	distanceGoal float32
	distance     float32
}

// New cria a câmera olhando a origem de cima, a 45 graus.
func New() *Orbit {
	o := &Orbit{
		MinDistance:  2,
		MaxDistance:  40,
		PanSpeed:     8,
		ClimbSpeed:   6,
		OrbitSpeed:   0.01,
		ZoomStep:     1.5,
		Smoothing:    0.12,
		Yaw:          45 * rl.Deg2rad,
		Pitch:        -30 * rl.Deg2rad,
		distanceGoal: 9,
		distance:     9,
		RLCamera: rl.Camera3D{
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
	}
	o.place()
	return o
}

// SetTarget move o foco imediatamente, sem suavização.
func (o *Orbit) SetTarget(p rl.Vector3) {
	o.focusGoal = mgl32.Vec3{p.X, p.Y, p.Z}
	o.focus = o.focusGoal
	o.place()
}

// Focus retorna o ponto focal atual (onde o jogador "está" para o alcance de interação).
func (o *Orbit) Focus() mgl32.Vec3 { return o.focus }

// Distance retorna a distância atual até o foco.
func (o *Orbit) Distance() float32 { return o.distance }

// SetMode alterna a projeção e recalcula a posição na hora.
func (o *Orbit) SetMode(m Mode) {
	o.Mode = m
	o.place()
}

// ToggleMode alterna entre perspectiva e ortográfica.
func (o *Orbit) ToggleMode() {
	if o.Mode == ModePerspective {
		o.SetMode(ModeOrthographic)
		return
	}
	o.SetMode(ModePerspective)
}

// Update aproxima foco e distância dos alvos e reposiciona a câmera.
func (o *Orbit) Update(dt float32) {
	f := util.Clamp(o.Smoothing*60*dt, 0, 1)
	o.focus = o.focus.Add(o.focusGoal.Sub(o.focus).Mul(f))
	o.distance = util.Lerp(o.distance, o.distanceGoal, f)
	o.place()
}

// HandleInput lê scroll (zoom), botão do meio (órbita), WASD (deslocamento no plano)
// e Q/E (descer/subir o foco pelo poço). Retorna true se algo mudou.
func (o *Orbit) HandleInput(dt float32) bool {
	changed := false

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.distanceGoal = util.Clamp(o.distanceGoal-wheel*o.ZoomStep, o.MinDistance, o.MaxDistance)
		changed = true
	}

	// O botão direito é do guincho; a órbita fica no do meio.
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			o.Yaw -= d.X * o.OrbitSpeed
			o.Pitch = util.Clamp(o.Pitch-d.Y*o.OrbitSpeed, minPitch, maxPitch)
			changed = true
		}
	}

	if rl.IsKeyDown(rl.KeyE) {
		o.focusGoal[1] += o.ClimbSpeed * dt
		changed = true
	}
	if rl.IsKeyDown(rl.KeyQ) {
		o.focusGoal[1] -= o.ClimbSpeed * dt
		changed = true
	}

	// Frente e direita projetadas no chão a partir do yaw.
	sin, cos := float32(math.Sin(float64(o.Yaw))), float32(math.Cos(float64(o.Yaw)))
	forward := mgl32.Vec3{-sin, 0, -cos}
	right := mgl32.Vec3{cos, 0, -sin}

	var move mgl32.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		// Longe do foco anda mais rápido.
		speed := o.PanSpeed * (o.distance / 10) * dt
		o.focusGoal = o.focusGoal.Add(move.Normalize().Mul(speed))
		changed = true
	}
	return changed
}

// place converte yaw, pitch e distância em posição. No modo ortográfico a distância
// vira escala (Fovy) e a câmera recua para não cortar a geometria.
func (o *Orbit) place() {
	dist := o.distance
	if o.Mode == ModeOrthographic {
		o.RLCamera.Projection = rl.CameraOrthographic
		o.RLCamera.Fovy = o.distance * 0.5
		dist = 200
	} else {
		o.RLCamera.Projection = rl.CameraPerspective
		o.RLCamera.Fovy = 45
	}

	cp, sp := float32(math.Cos(float64(o.Pitch))), float32(math.Sin(float64(o.Pitch)))
	cy, sy := float32(math.Cos(float64(o.Yaw))), float32(math.Sin(float64(o.Yaw)))
	offset := mgl32.Vec3{cp * sy, -sp, cp * cy}.Mul(dist)

	pos := o.focus.Add(offset)
	o.RLCamera.Position = rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
	o.RLCamera.Target = rl.Vector3{X: o.focus.X(), Y: o.focus.Y(), Z: o.focus.Z()}
}

// Position retorna a posição da câmera no mundo.
func (o *Orbit) Position() mgl32.Vec3 {
	p := o.RLCamera.Position
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// ViewMatrix retorna a view com a câmera na origem. Os modelos são transladados por
// (posição - câmera), o que mantém a precisão longe da origem do mundo.
func (o *Orbit) ViewMatrix() mgl32.Mat4 {
	dir := o.focus.Sub(o.Position())
	return mgl32.LookAtV(mgl32.Vec3{}, dir, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix retorna a projeção para a proporção da tela.
func (o *Orbit) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if o.Mode == ModeOrthographic {
		top := o.RLCamera.Fovy / 2
		right := top * aspect
		return mgl32.Ortho(-right, right, -top, top, nearPlane, farPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(o.RLCamera.Fovy), aspect, nearPlane, farPlane)
}
