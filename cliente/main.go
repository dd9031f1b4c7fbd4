package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"WinchWorks/cliente/internal/app"
	"WinchWorks/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Mantém o diretório de trabalho ao lado do executável (assets e config)
	if exePath, err := os.Executable(); err == nil {
		os.Chdir(filepath.Dir(exePath))
	}

	serverURL := flag.String("server", "", "URL do servidor WinchWorks (padrão: ws://127.0.0.1:8080/ws)")
	player := flag.String("player", "", "Identificador do jogador")
	configPath := flag.String("config", "", "Arquivo de configuração alternativo")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Log no terminal e em arquivo
	f, err := os.OpenFile("debug_winch.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
		defer f.Close()
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║          WinchWorks v0.1.0           ║")
	log.Println("║    Guincho de poço com força motriz  ║")
	log.Println("╚══════════════════════════════════════╝")

	var cfg *config.Config
	if *configPath != "" {
		cfg = config.LoadFrom(*configPath)
	} else {
		cfg = config.Load()
	}

	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *player != "" {
		cfg.PlayerID = *player
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	application := app.New(cfg)
	if err := application.Run(); err != nil {
		log.Fatalf("[WinchWorks] %v", err)
	}
}
