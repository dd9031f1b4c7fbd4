package winch

import (
	"errors"
	"fmt"

	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

// Caixas de seleção do modelo do guincho.
const (
	BoxSlot  = 0 // Slot do recipiente
	BoxCrank = 1 // Manivela
)

// AccessFlag é o tipo de acesso pedido ao sistema de claims.
type AccessFlag uint8

const (
	AccessUse AccessFlag = iota
	AccessBuild
)

var ErrInvalidFacing = errors.New("guincho só pode ser montado em face horizontal")

// Selection é o alvo de uma interação: bloco e caixa de seleção.
type Selection struct {
	Pos util.BlockPos
	Box int
}

// World é o que o bloco precisa do mundo do servidor.
type World interface {
	TryAccess(player PlayerID, pos util.BlockPos, flag AccessFlag) bool
	WinchAt(pos util.BlockPos) *BlockEntityWinch
	HeldItem(player PlayerID) *items.ItemStack
	SetHeldItem(player PlayerID, stack *items.ItemStack)
}

// MechanicalBase é o comportamento genérico de blocos de força mecânica (colocação e conexão).
type MechanicalBase interface {
	PlaceBlock(player PlayerID, pos util.BlockPos, facing util.Facing) error
	TryConnect(pos util.BlockPos, face util.Facing) bool
}

// BlockWinch roteia colocação e interações para a entidade do guincho.
type BlockWinch struct {
	World World
	Base  MechanicalBase

	// NominalStep é o tempo passado a cada passo, independente do tempo real entre passos.
	NominalStep float32
}

// NewBlockWinch cria o bloco.
func NewBlockWinch(world World, base MechanicalBase, nominalStep float32) *BlockWinch {
	return &BlockWinch{World: world, Base: base, NominalStep: nominalStep}
}

// TryPlace coloca o guincho e tenta se conectar a uma rede acima, depois abaixo.
func (b *BlockWinch) TryPlace(player PlayerID, pos util.BlockPos, facing util.Facing) error {
	if !facing.IsHorizontal() {
		return ErrInvalidFacing
	}
	if err := b.Base.PlaceBlock(player, pos, facing); err != nil {
		return fmt.Errorf("colocar guincho em %s: %w", pos, err)
	}
	if !b.Base.TryConnect(pos, util.FacingUp) {
		b.Base.TryConnect(pos, util.FacingDown)
	}
	return nil
}

// OnInteractStart começa uma interação. Rejeitada inteira se o jogador não tem acesso.
func (b *BlockWinch) OnInteractStart(player PlayerID, sel Selection, sneak bool) bool {
	if !b.World.TryAccess(player, sel.Pos, AccessUse) {
		return false
	}
	be := b.World.WinchAt(sel.Pos)
	if be == nil {
		return false
	}
	if sel.Box == BoxCrank {
		return be.TryStartTurning(player, sneak)
	}

	hand, changed := be.PutOrTake(b.World.HeldItem(player))
	if changed {
		b.World.SetHeldItem(player, hand)
	}
	return changed
}

// OnInteractStep avança o giro. secondsUsed é ignorado: cada passo vale NominalStep.
// TODO: medir o tempo real entre passos na entidade para compensar latência alta.
func (b *BlockWinch) OnInteractStep(secondsUsed float32, player PlayerID, sel Selection) bool {
	be := b.World.WinchAt(sel.Pos)
	if be == nil || be.RotationPlayer() != player {
		return false
	}
	return be.ContinueTurning(b.NominalStep)
}

// OnInteractStop encerra o giro se o jogador for quem gira.
func (b *BlockWinch) OnInteractStop(secondsUsed float32, player PlayerID, sel Selection) {
	be := b.World.WinchAt(sel.Pos)
	if be == nil || be.RotationPlayer() != player {
		return
	}
	be.StopTurning()
}

// OnInteractCancel libera o giro em interrupções forçadas. Sempre reconhece.
func (b *BlockWinch) OnInteractCancel(secondsUsed float32, player PlayerID, sel Selection, reason CancelReason) bool {
	be := b.World.WinchAt(sel.Pos)
	if be != nil && be.RotationPlayer() == player {
		return be.CancelTurning(reason)
	}
	return true
}

// HasMechPowerConnectorAt indica se a variante aceita eixo pela face dada.
// Cada variante só aceita pela face perpendicular (rotação de 90 graus).
func HasMechPowerConnectorAt(variant, face util.Facing) bool {
	switch variant {
	case util.FacingNorth:
		return face == util.FacingWest
	case util.FacingSouth:
		return face == util.FacingEast
	case util.FacingEast:
		return face == util.FacingSouth
	case util.FacingWest:
		return face == util.FacingNorth
	}
	return false
}
