package app

import (
	"log"

	"WinchWorks/shared/winch"
)

// connectServer conecta ao servidor em segundo plano.
func (a *App) connectServer() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro em connectServer: %v", r)
		}
	}()

	if err := a.netClient.Connect(); err != nil {
		log.Printf("[Network] Não foi possível conectar: %v", err)
		return
	}
	log.Printf("[Network] Conectado como %s", a.netClient.PlayerID())
}

// drainNetwork aplica na cena as mensagens recebidas desde o último frame.
// Roda na thread da janela, que é dona das réplicas e das malhas.
func (a *App) drainNetwork() {
	connected := a.netClient.IsConnected()
	switch {
	case connected && a.State == StateConnecting:
		a.State = StateViewing
		a.StatusText = "Conectado"
	case !connected && a.State != StateConnecting:
		a.controller.Cancel(winch.CancelDisconnected)
		a.State = StateConnecting
		a.StatusText = "Conexão perdida"
	}

	for {
		select {
		case msg := <-a.netClient.Inbox():
			a.scene.Apply(msg)
		default:
			return
		}
	}
}
