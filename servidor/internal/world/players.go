package world

import (
	"slices"

	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// Join registra o jogador. Na primeira entrada ele recebe o item inicial do catálogo;
// nas seguintes a mão atual é reenviada.
func (w *World) Join(player winch.PlayerID) {
	if w.joined[player] {
		w.handChanges.Enqueue(player, w.hands[player].Clone())
		return
	}
	w.joined[player] = true
	if w.hands[player] == nil && w.catalog.StarterItem != "" {
		w.SetHeldItem(player, w.catalog.NewStack(w.catalog.StarterItem))
	}
}

// Leave cancela qualquer giro do jogador que saiu.
func (w *World) Leave(player winch.PlayerID) {
	for pos, be := range w.winches {
		if be.RotationPlayer() == player {
			w.block.OnInteractCancel(0, player, winch.Selection{Pos: pos, Box: winch.BoxCrank}, winch.CancelDisconnected)
		}
	}
}

func (w *World) HeldItem(player winch.PlayerID) *items.ItemStack {
	return w.hands[player].Clone()
}

func (w *World) SetHeldItem(player winch.PlayerID, stack *items.ItemStack) {
	w.hands[player] = stack.Clone()
	w.handChanges.Enqueue(player, stack.Clone())
}

// HandChange é o último conteúdo da mão de um jogador.
type HandChange struct {
	Player winch.PlayerID
	Item   *items.ItemStack
}

// TakeHandChanges retorna as mãos alteradas desde a última chamada, na ordem da primeira mudança.
func (w *World) TakeHandChanges() []HandChange {
	var out []HandChange
	w.handChanges.Drain(func(p winch.PlayerID, it *items.ItemStack) {
		out = append(out, HandChange{Player: p, Item: it})
	})
	return out
}

// TryAccess consulta os claims. Sem claim cobrindo a posição, todos têm acesso.
func (w *World) TryAccess(player winch.PlayerID, pos util.BlockPos, flag winch.AccessFlag) bool {
	for _, c := range w.cfg.Claims {
		if pos.X < c.MinX || pos.X > c.MaxX || pos.Y < c.MinY || pos.Y > c.MaxY || pos.Z < c.MinZ || pos.Z > c.MaxZ {
			continue
		}
		if string(player) == c.Owner {
			continue
		}
		if flag == winch.AccessUse && slices.Contains(c.Allowed, string(player)) {
			continue
		}
		return false
	}
	return true
}

// MaxDepth e BottomLiquid descrevem o poço sob cada guincho.
func (w *World) MaxDepth(pos util.BlockPos) float32 {
	if d, ok := w.shaftDepth[pos]; ok && d > 0 {
		return d
	}
	return w.cfg.Winch.MaxShaftDepth
}

func (w *World) BottomLiquid(util.BlockPos) string {
	return w.cfg.ShaftLiquid
}

var (
	_ winch.World          = (*World)(nil)
	_ winch.MechanicalBase = (*World)(nil)
	_ winch.Shaft          = (*World)(nil)
)
