package world

import (
	"log"

	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/winch"
)

// Handle aplica uma mensagem de interação vinda de um cliente.
// Retorna false quando a interação foi recusada ou terminou (o cliente deve parar de enviar passos).
func (w *World) Handle(msg *wnet.Interact) bool {
	player := winch.PlayerID(msg.PlayerID)
	sel := winch.Selection{Pos: msg.Pos, Box: int(msg.Box)}

	switch msg.Kind {
	case wnet.InteractStart:
		ok := w.block.OnInteractStart(player, sel, msg.Sneak)
		if !ok {
			log.Printf("[World] Interação de %s em %s recusada", player, sel.Pos)
		}
		return ok
	case wnet.InteractStep:
		if w.block.OnInteractStep(msg.Elapsed, player, sel) {
			return true
		}
		// Passo recusado (fim de curso ou pré-condição quebrada) encerra a interação como um Stop.
		w.block.OnInteractStop(msg.Elapsed, player, sel)
		return false
	case wnet.InteractStop:
		w.block.OnInteractStop(msg.Elapsed, player, sel)
		return false
	case wnet.InteractCancel:
		w.block.OnInteractCancel(msg.Elapsed, player, sel, msg.CancelReason)
		return false
	}
	log.Printf("[World] Tipo de interação desconhecido: %d", msg.Kind)
	return false
}
