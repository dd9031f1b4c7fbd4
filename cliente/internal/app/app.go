package app

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"WinchWorks/cliente/internal/assets"
	"WinchWorks/cliente/internal/camera"
	"WinchWorks/cliente/internal/client"
	"WinchWorks/cliente/internal/gpu"
	"WinchWorks/cliente/internal/interact"
	"WinchWorks/cliente/internal/meshing"
	"WinchWorks/cliente/internal/render"
	"WinchWorks/cliente/internal/scene"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/winch"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateConnecting AppState = iota // Conectando ao servidor
	StateViewing                    // Jogando
	StatePaused                     // Pausado
)

// App é a aplicação principal do WinchWorks.
type App struct {
	Config *config.Config
	State  AppState

	Cam *camera.Orbit

	frameCount int
	StatusText string

	catalog    *catalog.Catalog
	assets     *assets.Manager
	host       *gpu.Host
	climate    *gpu.ClimateMaps
	scene      *scene.Scene
	netClient  *client.NetworkClient
	controller *interact.Controller

	// Caixa sob o cursor neste frame
	hover *interact.Target
	quit  bool
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:     cfg,
		State:      StateConnecting,
		StatusText: "Conectando ao servidor...",
	}
}

// Run abre a janela e roda o loop principal até ela fechar.
func (a *App) Run() error {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	mgr, err := assets.NewManager(a.Config.AssetsDir)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	a.assets = mgr
	a.catalog = catalog.LoadOrDefault(a.Config.CatalogPath)

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	a.Cam = camera.New()
	a.Cam.SetTarget(rl.Vector3{X: 0.5, Y: 1, Z: 0.5})

	log.Println("[WinchWorks] Janela inicializada com sucesso")
	log.Printf("[WinchWorks] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	a.host = gpu.NewHost(a.Config.AssetsDir)
	a.climate = gpu.NewClimateMaps(a.Config.AssetsDir)
	svc := render.Services{
		Uploader:   a.host,
		Drawer:     a.host,
		Tesselator: meshing.NewTesselator(mgr),
		Climate:    a.climate,
	}
	a.scene = scene.New(svc, a.Config.Winch, a.catalog, a.Config.PlayerID)

	a.netClient = client.NewNetworkClient(a.Config.ServerURL, a.Config.PlayerID)
	a.controller = interact.New(a.Config.PlayerID, a.Config.Winch.NominalStepSeconds, a.Config.Winch.InteractReach, a.netClient)

	go a.connectServer()

	for !rl.WindowShouldClose() && !a.quit {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
	return nil
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	a.drainNetwork()

	switch a.State {
	case StateViewing:
		a.updateCamera()
		a.updateInput()
		a.updateInteraction()
	case StateConnecting, StatePaused:
		a.updateInput()
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	a.controller.Cancel(winch.CancelDisconnected)
	a.netClient.Close()

	a.scene.Dispose()
	a.host.Unload()

	if err := a.Config.Save(); err != nil {
		log.Printf("[WinchWorks] Erro ao salvar configurações: %v", err)
	}
}
