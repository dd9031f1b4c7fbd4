package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Endereço onde o servidor escuta")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║        WinchWorks Launcher           ║")
	fmt.Println("╚══════════════════════════════════════╝")

	serverBin, clientBin := "server", "client"
	if runtime.GOOS == "windows" {
		serverBin, clientBin = "server.exe", "client.exe"
	}

	// 1. Servidor
	fmt.Println("[1/2] Iniciando Servidor...")
	var serverCmd *exec.Cmd
	if runtime.GOOS == "windows" {
		// Janela própria para ver os logs
		serverCmd = exec.Command("cmd", "/c", "start", "WinchWorks SERVER", serverBin)
	} else {
		serverCmd = exec.Command("./" + serverBin)
		serverCmd.Stdout = os.Stdout
		serverCmd.Stderr = os.Stderr
	}
	serverCmd.Dir = "servidor"
	if err := serverCmd.Start(); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	// 2. Aguardar a porta abrir
	fmt.Println("Aguardando inicialização do servidor...")
	if !waitForPort(*addr, 15*time.Second) {
		log.Printf("Servidor não respondeu em %s; abrindo o cliente mesmo assim", *addr)
	}

	// 3. Cliente
	fmt.Println("[2/2] Abrindo Cliente...")
	absClientPath, err := filepath.Abs(filepath.Join("cliente", clientBin))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath, "-server", "ws://"+*addr+"/ws")
	clientCmd.Dir = "cliente"

	if err := clientCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o cliente em %s\n", absClientPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! WinchWorks foi iniciado.")
	if runtime.GOOS != "windows" {
		// Sem janela separada: o launcher segura o servidor até o cliente fechar.
		clientCmd.Wait()
		serverCmd.Process.Signal(os.Interrupt)
		serverCmd.Wait()
		return
	}
	fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
	time.Sleep(2 * time.Second)
}

// waitForPort tenta conectar até o prazo acabar.
func waitForPort(addr string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(250 * time.Millisecond)
	}
	return false
}
