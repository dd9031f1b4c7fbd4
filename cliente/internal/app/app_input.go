package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"WinchWorks/cliente/internal/camera"
	"WinchWorks/cliente/internal/interact"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		a.Cam.ToggleMode()
		if a.Cam.Mode == camera.ModeOrthographic {
			log.Println("[Camera] Modo Ortográfico")
		} else {
			log.Println("[Camera] Modo Perspectiva")
		}
	}
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGrid = !a.Config.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// ESC: Alternar Pausa
	if rl.IsKeyPressed(rl.KeyEscape) {
		switch a.State {
		case StateViewing:
			a.controller.Cancel(winch.CancelReleasedButton)
			a.State = StatePaused
			log.Println("[App] Jogo Pausado")
		case StatePaused:
			a.State = StateViewing
			log.Println("[App] Retomando Jogo")
		}
	}
}

// updateInteraction mira as caixas dos guinchos e alimenta o controlador de interação.
// Botão direito usa; Shift segurado ao começar faz subir em vez de descer.
func (a *App) updateInteraction() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), a.Cam.RLCamera)
	a.hover = a.pick(ray)

	in := interact.Input{
		Target:  a.hover,
		Pressed: rl.IsMouseButtonPressed(rl.MouseRightButton),
		Down:    rl.IsMouseButtonDown(rl.MouseRightButton),
		Sneak:   rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Dt:      rl.GetFrameTime(),
	}
	// O "jogador" é o ponto que a câmera orbita.
	if t, ok := a.controller.Locked(); ok {
		in.Distance = distanceTo(a.Cam.Focus(), t.Pos)
		if be := a.scene.WinchAt(t.Pos); be != nil {
			in.Holder = string(be.RotationPlayer())
		}
	}
	a.controller.Update(in)
}

func distanceTo(p mgl32.Vec3, pos util.BlockPos) float32 {
	return mgl32.Vec3{float32(pos.X) + 0.5, float32(pos.Y) + 0.5, float32(pos.Z) + 0.5}.Sub(p).Len()
}

// selectionBoxes retorna as caixas do guincho: slot na metade de baixo, manivela em cima.
func selectionBoxes(pos util.BlockPos) [2]rl.BoundingBox {
	x, y, z := float32(pos.X), float32(pos.Y), float32(pos.Z)
	return [2]rl.BoundingBox{
		winch.BoxSlot:  rl.NewBoundingBox(rl.Vector3{X: x + 0.2, Y: y, Z: z + 0.2}, rl.Vector3{X: x + 0.8, Y: y + 0.4, Z: z + 0.8}),
		winch.BoxCrank: rl.NewBoundingBox(rl.Vector3{X: x, Y: y + 0.4, Z: z}, rl.Vector3{X: x + 1, Y: y + 1, Z: z + 1}),
	}
}

// pick retorna a caixa mais próxima atingida pelo raio.
func (a *App) pick(ray rl.Ray) *interact.Target {
	var (
		best    *interact.Target
		bestDst float32
	)
	for _, pos := range a.scene.Positions() {
		for box, bb := range selectionBoxes(pos) {
			hit := rl.GetRayCollisionBox(ray, bb)
			if !hit.Hit || (best != nil && hit.Distance >= bestDst) {
				continue
			}
			best = &interact.Target{Pos: pos, Box: int32(box)}
			bestDst = hit.Distance
		}
	}
	return best
}
