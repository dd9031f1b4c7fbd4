package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WinchTuning agrupa as constantes físicas e visuais do guincho.
type WinchTuning struct {
	ManualAngularSpeedDeg float32 `json:"manual_angular_speed_deg"` // Velocidade do tambor girado à mão (graus/s)
	DepthLerpRate         float32 `json:"depth_lerp_rate"`          // Fator de interpolação da profundidade por segundo
	MaxLiquidHeight       float32 `json:"max_liquid_height"`        // Altura visual do líquido com o balde cheio
	DefaultCapacityLitres float32 `json:"default_capacity_litres"`  // Capacidade assumida para recipientes desconhecidos
	NominalStepSeconds    float32 `json:"nominal_step_seconds"`     // Tempo fixo passado a cada passo de interação
	ManualDepthSpeed      float32 `json:"manual_depth_speed"`       // Blocos por segundo girando à mão
	AutomatedDepthSpeed   float32 `json:"automated_depth_speed"`    // Blocos por segundo por unidade de velocidade da rede
	MaxShaftDepth         float32 `json:"max_shaft_depth"`          // Profundidade máxima de qualquer poço
	RenderRange           float32 `json:"render_range"`             // Distância máxima (blocos) para desenhar o guincho
	InteractReach         float32 `json:"interact_reach"`           // Alcance do jogador antes de cancelar a interação
}

// WinchPlacement é um guincho colocado pelo servidor ao iniciar um mundo novo.
type WinchPlacement struct {
	X          int32   `json:"x"`
	Y          int32   `json:"y"`
	Z          int32   `json:"z"`
	Facing     string  `json:"facing"`
	ShaftDepth float32 `json:"shaft_depth"` // Profundidade do poço abaixo do guincho
}

// MechSource é uma fonte de força mecânica (ex.: moinho) no mundo do servidor.
type MechSource struct {
	X       int32   `json:"x"`
	Y       int32   `json:"y"`
	Z       int32   `json:"z"`
	Speed   float32 `json:"speed"`
	Reverse bool    `json:"reverse"`
}

// Claim protege uma região; apenas o dono e os jogadores listados podem usar blocos dentro dela.
type Claim struct {
	Owner   string   `json:"owner"`
	Allowed []string `json:"allowed"`
	MinX    int32    `json:"min_x"`
	MinY    int32    `json:"min_y"`
	MinZ    int32    `json:"min_z"`
	MaxX    int32    `json:"max_x"`
	MaxY    int32    `json:"max_y"`
	MaxZ    int32    `json:"max_z"`
}

// Config armazena as configurações do WinchWorks.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Rede
	ServerURL  string `json:"server_url"`  // Usado pelo cliente
	ListenAddr string `json:"listen_addr"` // Usado pelo servidor
	PlayerID   string `json:"player_id"`

	// Simulação (servidor)
	TickRateHz      int              `json:"tick_rate_hz"`
	AutoSaveSeconds int              `json:"auto_save_seconds"`
	SaveDir         string           `json:"save_dir"`
	WorldName       string           `json:"world_name"`
	ShaftLiquid     string           `json:"shaft_liquid"` // Líquido no fundo dos poços ("" = seco)
	CatalogPath     string           `json:"catalog_path"`
	AssetsDir       string           `json:"assets_dir"`
	Winches         []WinchPlacement `json:"winches"`
	MechSources     []MechSource     `json:"mech_sources"`
	Claims          []Claim          `json:"claims"`

	Winch WinchTuning `json:"winch"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
}

// DefaultWinchTuning retorna os valores do guincho original.
func DefaultWinchTuning() WinchTuning {
	return WinchTuning{
		ManualAngularSpeedDeg: 200,
		DepthLerpRate:         50,
		MaxLiquidHeight:       0.435,
		DefaultCapacityLitres: 10,
		NominalStepSeconds:    0.1,
		ManualDepthSpeed:      1.0,
		AutomatedDepthSpeed:   0.5,
		MaxShaftDepth:         32,
		RenderRange:           24,
		InteractReach:         5,
	}
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "WinchWorks",
		Fullscreen:   false,
		TargetFPS:    60,

		ServerURL:  "ws://127.0.0.1:8080/ws",
		ListenAddr: ":8080",
		PlayerID:   "player",

		TickRateHz:      20,
		AutoSaveSeconds: 30,
		SaveDir:         "saves",
		WorldName:       "poco",
		ShaftLiquid:     "waterportion",
		CatalogPath:     "assets/catalog.yaml",
		AssetsDir:       "assets",
		Winches: []WinchPlacement{
			{X: 0, Y: 1, Z: 0, Facing: "north", ShaftDepth: 6},
			{X: 4, Y: 1, Z: 0, Facing: "east", ShaftDepth: 10},
		},
		MechSources: []MechSource{
			{X: 4, Y: 2, Z: 0, Speed: 1.0},
		},

		Winch: DefaultWinchTuning(),

		ShowDebugInfo: true,
		ShowGrid:      true,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do arquivo ao lado do executável.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	return LoadFrom(configPath())
}

// LoadFrom carrega as configurações de um arquivo JSON específico.
// Campos ausentes mantêm o valor padrão; JSON inválido devolve o padrão inteiro.
func LoadFrom(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo salva as configurações no caminho indicado.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
