package main

import (
	"flag"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"WinchWorks/servidor/internal/world"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/winch"
)

func main() {
	// Working directory = diretório do executável, para que saves/, tmp/ e assets/ funcionem.
	if exePath, err := os.Executable(); err == nil {
		os.Chdir(filepath.Dir(exePath))
	}

	listen := flag.String("listen", "", "Endereço de escuta (padrão: :8080)")
	configPath := flag.String("config", "", "Arquivo de configuração alternativo")
	worldName := flag.String("world", "", "Nome do mundo salvo")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			log.SetOutput(io.MultiWriter(os.Stdout, logFile))
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║      WinchWorks SERVER v0.1.0        ║")
	log.Println("╚══════════════════════════════════════╝")

	var cfg *config.Config
	if *configPath != "" {
		cfg = config.LoadFrom(*configPath)
	} else {
		cfg = config.Load()
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *worldName != "" {
		cfg.WorldName = *worldName
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Printf("[Startup] Catálogo indisponível (%v), usando o embutido", err)
		cat = catalog.Default()
	}

	store, err := winch.OpenStore(cfg.SaveDir, cfg.WorldName)
	if err != nil {
		log.Printf("[Startup] Persistência desativada: %v", err)
		store = nil
	}

	w := world.New(cfg, cat)
	var saved []*winch.SavedWinch
	if store != nil {
		saved, err = store.LoadAll()
		if err != nil {
			log.Printf("[Startup] Falha ao ler guinchos salvos: %v", err)
		}
	}
	w.Populate(saved)

	hub := newHub()

	sim := NewSimulation(cfg, w, hub, store)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		sim.Run(stop)
		close(done)
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("[Shutdown] Salvando mundo...")
		close(stop)
		<-done
		if store != nil {
			store.Close()
		}
		os.Exit(0)
	}()

	http.HandleFunc("/ws", func(rw http.ResponseWriter, r *http.Request) {
		serveWs(hub, sim, rw, r)
	})

	// Verifica a porta antes para dar uma mensagem clara quando já há um servidor rodando.
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Printf("╔══════════════════════════════════════════════════════════════╗")
		log.Printf("║ ERRO CRÍTICO: Não foi possível abrir %-24s║", cfg.ListenAddr)
		log.Printf("║ Provavelmente há outra instância do servidor rodando.        ║")
		log.Printf("╚══════════════════════════════════════════════════════════════╝")
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	log.Printf("Servidor WinchWorks iniciado em %s", cfg.ListenAddr)
	if err := http.Serve(ln, nil); err != nil {
		log.Fatalf("Erro fatal no servidor HTTP: %v", err)
	}
}
