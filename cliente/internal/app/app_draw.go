package app

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"WinchWorks/cliente/internal/render"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// Textos das dicas de interação por código de tradução.
var helpText = map[string]string{
	winch.LangAddRemoveItems: "Colocar/retirar recipiente",
	winch.LangLower:          "Descer o balde",
	winch.LangRaise:          "Subir o balde",
}

var hotKeyText = map[string]string{
	winch.HotKeySneak: "Shift",
}

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	if a.State == StateConnecting {
		a.drawConnectingScreen()
	} else {
		a.drawScene()
		a.drawHUD()

		if a.State == StatePaused {
			a.drawPauseMenu()
		}
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
// O que é desenhado pela raylib usa a câmera dela; os guinchos usam matrizes relativas à câmera.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	if a.Config.ShowGrid {
		rl.DrawGrid(40, 1.0)
	}

	for _, pos := range a.scene.Positions() {
		be := a.scene.WinchAt(pos)
		s := be.Snapshot()
		// Contorno do poço
		rl.DrawCubeWires(rl.Vector3{X: float32(pos.X) + 0.5, Y: float32(pos.Y) - s.MaxDepth/2, Z: float32(pos.Z) + 0.5},
			1, s.MaxDepth, 1, rl.NewColor(90, 90, 110, 255))
	}

	if a.hover != nil {
		box := selectionBoxes(a.hover.Pos)[a.hover.Box]
		rl.DrawBoundingBox(box, rl.Yellow)
	}

	a.host.BeginFrame()
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.scene.Render(render.Frame{
		Delta:      rl.GetFrameTime(),
		CameraPos:  a.Cam.Position(),
		View:       a.Cam.ViewMatrix(),
		Projection: a.Cam.ProjectionMatrix(float32(w) / float32(max(h, 1))),
	})

	rl.EndMode3D()
}

// Painel de debug no canto superior direito.
const (
	panelW   = 340
	panelPad = 10
)

var (
	panelBg   = rl.NewColor(0, 0, 0, 180)
	panelEdge = rl.NewColor(50, 50, 50, 255)
	separator = rl.NewColor(100, 100, 100, 100)
)

// drawHUD desenha as dicas e, com F3, o painel de estado.
func (a *App) drawHUD() {
	a.drawHelp()

	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	version := "WinchWorks v0.1.0"
	rl.DrawText(version, sw-rl.MeasureText(version, 18)-20, sh-30, 18, rl.NewColor(200, 200, 200, 150))

	if !a.Config.ShowDebugInfo {
		return
	}

	x, y := sw-panelW-panelPad, int32(panelPad)
	rl.DrawRectangle(x, y, panelW, 220, panelBg)
	rl.DrawRectangleLines(x, y, panelW, 220, panelEdge)
	x += panelPad

	fps := rl.GetFPS()
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x, y+10, 20, fpsColor(fps))
	link, linkColor := "sem servidor", rl.Orange
	if a.netClient.IsConnected() {
		link, linkColor = "online", rl.SkyBlue
	}
	rl.DrawText(link, x+200, y+10, 20, linkColor)

	rule := func(at int32) { rl.DrawLine(x, y+at, x+panelW-2*panelPad, y+at, separator) }

	rule(35)
	rl.DrawText("MÃO", x, y+45, 12, rl.Gray)
	rl.DrawText(describeStack(a.scene.Hand()), x, y+60, 16, rl.White)

	rule(85)
	rl.DrawText("GUINCHO", x, y+95, 12, rl.Gray)
	if a.hover == nil {
		rl.DrawText("[nenhum]", x, y+110, 14, rl.DarkGray)
	} else {
		a.drawWinchInfo(a.hover.Pos, x, y+110)
	}

	rule(175)
	rl.DrawText("Botão direito: usar | Shift: subir | WASD/QE: mover", x, y+185, 12, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Malhas na GPU: %d | F3: HUD | G: grade", a.host.Live()), x, y+200, 12, rl.SkyBlue)
}

func fpsColor(fps int32) rl.Color {
	switch {
	case fps < 30:
		return rl.Red
	case fps < 50:
		return rl.Yellow
	}
	return rl.Green
}

func (a *App) drawWinchInfo(pos util.BlockPos, x, y int32) {
	be := a.scene.WinchAt(pos)
	if be == nil {
		return
	}
	s := be.Snapshot()
	mode := "parado"
	switch {
	case s.IsTurningAutomated:
		mode = "rede mecânica"
	case s.IsTurningManually && s.IsRaising:
		mode = fmt.Sprintf("subindo (%s)", s.RotatingPlayer)
	case s.IsTurningManually:
		mode = fmt.Sprintf("descendo (%s)", s.RotatingPlayer)
	}
	rl.DrawText(fmt.Sprintf("%s %s: %s", pos, be.Facing, mode), x, y, 14, rl.White)
	rl.DrawText(fmt.Sprintf("Profundidade: %.2f / %.0f", s.BucketDepth, s.MaxDepth), x, y+18, 14, rl.LightGray)
	rl.DrawText(describeStack(s.Slot), x, y+36, 14, rl.LightGray)
}

// drawHelp mostra as dicas da caixa mirada perto do cursor.
func (a *App) drawHelp() {
	if a.hover == nil {
		return
	}
	tips := a.scene.Help(winch.Selection{Pos: a.hover.Pos, Box: int(a.hover.Box)})
	mouse := rl.GetMousePosition()
	x, y := int32(mouse.X)+18, int32(mouse.Y)+8
	for i, tip := range tips {
		line := helpText[tip.LangCode]
		if line == "" {
			line = tip.LangCode
		}
		button := "Dir"
		if tip.MouseButton == winch.MouseLeft {
			button = "Esq"
		}
		if tip.HotKey != "" {
			button = hotKeyText[tip.HotKey] + " + " + button
		}
		text := fmt.Sprintf("[%s] %s", button, line)
		rl.DrawRectangle(x-4, y+int32(i)*20-2, rl.MeasureText(text, 16)+8, 20, rl.NewColor(0, 0, 0, 160))
		rl.DrawText(text, x, y+int32(i)*20, 16, rl.White)
	}
}

func describeStack(s *items.ItemStack) string {
	if s == nil {
		return "vazio"
	}
	if s.Contents == nil {
		return s.Code
	}
	return fmt.Sprintf("%s (%s x%d)", s.Code, s.Contents.Code, s.Contents.StackSize)
}

type menuButton struct {
	label  string
	accent rl.Color
	action func()
}

// drawPauseMenu escurece a cena e empilha os botões num painel centralizado.
func (a *App) drawPauseMenu() {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, sw, sh, rl.NewColor(0, 0, 0, 150))

	buttons := []menuButton{
		{"CONTINUAR (ESC)", rl.Green, func() { a.State = StateViewing }},
		{"PROJEÇÃO (P)", rl.Gray, a.Cam.ToggleMode},
		{"SAIR", rl.Red, func() {
			log.Println("[App] Saindo pelo menu de pausa")
			a.quit = true
		}},
	}

	const (
		pw, bh, gap = 380, 40, 14
		header      = 80
	)
	ph := int32(header + len(buttons)*(bh+gap) + 20)
	px, py := (sw-pw)/2, (sh-ph)/2
	rl.DrawRectangle(px, py, pw, ph, rl.NewColor(30, 30, 35, 255))
	rl.DrawRectangleLines(px, py, pw, ph, rl.LightGray)

	title := "PAUSADO"
	rl.DrawText(title, px+(pw-rl.MeasureText(title, 24))/2, py+28, 24, rl.Gold)

	mouse := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseLeftButton)
	cursor := rl.MouseCursorDefault
	for i, b := range buttons {
		r := rl.Rectangle{X: float32(px + 40), Y: float32(py + header + int32(i)*(bh+gap)), Width: pw - 80, Height: bh}
		hover := rl.CheckCollisionPointRec(mouse, r)
		drawButton(r, b.label, b.accent, hover)
		if hover {
			cursor = rl.MouseCursorPointingHand
			if clicked {
				b.action()
			}
		}
	}
	// Cursor decidido uma vez por frame, depois de todos os botões.
	rl.SetMouseCursor(int32(cursor))
}

// drawButton desenha o botão; com o mouse em cima a borda fica mais clara.
func drawButton(r rl.Rectangle, text string, accent rl.Color, hover bool) {
	edge := accent
	if hover {
		edge = rl.ColorBrightness(accent, 0.3)
	}
	x, y, w, h := int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)
	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, edge)
	rl.DrawText(text, x+(w-rl.MeasureText(text, 18))/2, y+(h-18)/2, 18, rl.White)
}

func (a *App) drawConnectingScreen() {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, sw, sh, rl.NewColor(20, 20, 25, 255))

	lines := []struct {
		text  string
		size  int32
		dy    int32
		color rl.Color
	}{
		{"WINCHWORKS", 40, -60, rl.Gold},
		{fmt.Sprintf("%s (%s)", a.StatusText, a.Config.ServerURL), 18, 20, rl.LightGray},
	}
	for _, l := range lines {
		rl.DrawText(l.text, (sw-rl.MeasureText(l.text, l.size))/2, sh/2+l.dy, l.size, l.color)
	}
}
