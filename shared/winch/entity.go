package winch

import (
	"math"
	"sync"

	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

const deg2rad = math.Pi / 180

// PlayerID identifica um jogador. Vazio significa "nenhum".
type PlayerID string

// CancelReason explica por que uma interação foi interrompida à força.
type CancelReason uint8

const (
	CancelReleasedButton CancelReason = iota
	CancelMovedAway
	CancelDisconnected
	CancelDeath
)

// MotionState é uma cópia do estado de movimento lida pelo renderizador e pela rede.
type MotionState struct {
	IsRaising          bool
	IsTurningManually  bool
	IsTurningAutomated bool
	AngleRad           float32
	BucketDepth        float32
	MaxDepth           float32
	RotatingPlayer     PlayerID
	NetworkAngle       float32
	TurnDir            RotDirection
	Slot               *items.ItemStack
}

// CanMoveUp indica se o balde ainda pode subir.
func (m MotionState) CanMoveUp() bool { return m.BucketDepth > 0 }

// CanMoveDown indica se o balde ainda pode descer.
func (m MotionState) CanMoveDown() bool { return m.BucketDepth < m.MaxDepth }

// CanMove indica se o sentido atual ainda tem curso livre.
func (m MotionState) CanMove() bool {
	if m.IsRaising {
		return m.CanMoveUp()
	}
	return m.CanMoveDown()
}

// BlockEntityWinch é a entidade de bloco do guincho: slot do recipiente, profundidade do balde
// e o estado de giro (manual ou pela rede mecânica).
//
// Toda mutação acontece na thread de simulação; o renderizador só lê via Snapshot.
type BlockEntityWinch struct {
	Pos    util.BlockPos
	Facing util.Facing

	mu      sync.RWMutex
	tuning  config.WinchTuning
	catalog *catalog.Catalog
	shaft   Shaft
	network MechNetwork

	inputSlot          *items.ItemStack
	isRaising          bool
	isTurningManually  bool
	isTurningAutomated bool
	angleRad           float32
	bucketDepth        float32
	maxDepth           float32
	rotatingPlayer     PlayerID
	netAngle           float32
	netTurnDir         RotDirection

	dirty bool
}

// NewBlockEntity cria a entidade de um guincho recém colocado.
func NewBlockEntity(pos util.BlockPos, facing util.Facing, tuning config.WinchTuning, cat *catalog.Catalog, shaft Shaft) *BlockEntityWinch {
	be := &BlockEntityWinch{
		Pos:     pos,
		Facing:  facing,
		tuning:  tuning,
		catalog: cat,
		shaft:   shaft,
	}
	be.maxDepth = be.computeMaxDepth()
	return be
}

func (be *BlockEntityWinch) computeMaxDepth() float32 {
	limit := be.tuning.MaxShaftDepth
	if be.shaft != nil {
		if d := be.shaft.MaxDepth(be.Pos); d < limit {
			limit = d
		}
	}
	if limit < 0 {
		return 0
	}
	return limit
}

// SetNetwork conecta (ou desconecta com nil) o guincho a uma rede mecânica.
func (be *BlockEntityWinch) SetNetwork(n MechNetwork) {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.network = n
	if n == nil && be.isTurningAutomated {
		be.isTurningAutomated = false
		be.dirty = true
	}
}

// Network retorna a rede mecânica conectada, ou nil.
func (be *BlockEntityWinch) Network() MechNetwork {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.network
}

// RotationPlayer retorna o jogador que detém o giro, ou "".
func (be *BlockEntityWinch) RotationPlayer() PlayerID {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.rotatingPlayer
}

// InputSlot retorna uma cópia da pilha no slot do recipiente.
func (be *BlockEntityWinch) InputSlot() *items.ItemStack {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.inputSlot.Clone()
}

// SlotEmpty indica se não há recipiente pendurado.
func (be *BlockEntityWinch) SlotEmpty() bool {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.inputSlot == nil
}

// CanMoveUp e CanMoveDown expressam os limites físicos de curso do balde.
func (be *BlockEntityWinch) CanMoveUp() bool {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.bucketDepth > 0
}

func (be *BlockEntityWinch) CanMoveDown() bool {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return be.bucketDepth < be.maxDepth
}

// TryStartTurning reivindica o giro manual para o jogador.
// Falha se outro jogador já gira ou se a rede mecânica está movendo o guincho.
func (be *BlockEntityWinch) TryStartTurning(player PlayerID, raising bool) bool {
	if player == "" {
		return false
	}
	be.mu.Lock()
	defer be.mu.Unlock()

	if be.rotatingPlayer != "" && be.rotatingPlayer != player {
		return false
	}
	if be.isTurningAutomated {
		return false
	}
	be.rotatingPlayer = player
	be.isTurningManually = true
	be.isRaising = raising
	be.dirty = true
	return true
}

// ContinueTurning avança o balde e o tambor por elapsed segundos no sentido atual.
// Retorna false (encerrando a interação) quando o curso acabou ou não há giro manual ativo.
func (be *BlockEntityWinch) ContinueTurning(elapsed float32) bool {
	be.mu.Lock()
	defer be.mu.Unlock()

	if !be.isTurningManually || be.rotatingPlayer == "" {
		return false
	}
	if be.isRaising && be.bucketDepth <= 0 {
		return false
	}
	if !be.isRaising && be.bucketDepth >= be.maxDepth {
		return false
	}

	sign := float32(1)
	if be.isRaising {
		sign = -1
	}
	be.moveLocked(sign * be.tuning.ManualDepthSpeed * elapsed)
	be.angleRad += elapsed * be.tuning.ManualAngularSpeedDeg * deg2rad * sign
	be.dirty = true
	return true
}

// StopTurning libera o giro. Idempotente.
func (be *BlockEntityWinch) StopTurning() {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.stopLocked()
}

// CancelTurning tem o mesmo efeito de StopTurning; sempre reconhece o cancelamento.
func (be *BlockEntityWinch) CancelTurning(reason CancelReason) bool {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.stopLocked()
	return true
}

func (be *BlockEntityWinch) stopLocked() {
	if be.isTurningManually || be.isTurningAutomated || be.rotatingPlayer != "" {
		be.dirty = true
	}
	be.isTurningManually = false
	be.isTurningAutomated = false
	be.rotatingPlayer = ""
}

// TickAutomated aplica um tick da rede mecânica. Nunca avança junto com o giro manual.
// Retorna true se o estado visível mudou.
func (be *BlockEntityWinch) TickAutomated(dt float32) bool {
	be.mu.Lock()
	defer be.mu.Unlock()

	n := be.network
	if n == nil || n.Speed() <= 0 || be.isTurningManually {
		if be.isTurningAutomated {
			be.isTurningAutomated = false
			be.dirty = true
			return true
		}
		return false
	}

	be.isTurningAutomated = true
	be.netAngle = n.AngleRad()
	be.netTurnDir = n.TurnDir()
	be.angleRad = be.netAngle
	be.isRaising = be.netTurnDir == Counterclockwise

	step := n.Speed() * be.tuning.AutomatedDepthSpeed * dt
	if be.isRaising && be.bucketDepth > 0 {
		be.moveLocked(-step)
	} else if !be.isRaising && be.bucketDepth < be.maxDepth {
		be.moveLocked(step)
	}
	be.dirty = true
	return true
}

// moveLocked desloca o balde respeitando [0, maxDepth] e enche o recipiente ao tocar o fundo.
func (be *BlockEntityWinch) moveLocked(delta float32) {
	be.bucketDepth = util.Clamp(be.bucketDepth+delta, 0, be.maxDepth)
	if be.bucketDepth >= be.maxDepth {
		be.fillFromWellLocked()
	}
}

func (be *BlockEntityWinch) fillFromWellLocked() {
	if be.inputSlot == nil || be.shaft == nil || be.catalog == nil {
		return
	}
	liquid := be.shaft.BottomLiquid(be.Pos)
	if liquid == "" {
		return
	}
	be.catalog.FillWith(be.inputSlot, liquid, be.tuning.DefaultCapacityLitres)
}

// PutOrTake coloca o recipiente da mão no slot vazio, ou devolve o do slot para uma mão vazia.
// Só funciona com o balde no topo e ninguém girando.
// Retorna o novo conteúdo da mão e se algo mudou.
func (be *BlockEntityWinch) PutOrTake(hand *items.ItemStack) (*items.ItemStack, bool) {
	be.mu.Lock()
	defer be.mu.Unlock()

	if be.rotatingPlayer != "" || be.isTurningAutomated || be.bucketDepth > 0 {
		return hand, false
	}
	switch {
	case be.inputSlot == nil && hand != nil:
		if be.catalog != nil && be.catalog.Container(hand) == nil {
			return hand, false
		}
		be.inputSlot = hand.Clone()
		be.dirty = true
		return nil, true
	case be.inputSlot != nil && hand == nil:
		taken := be.inputSlot
		be.inputSlot = nil
		be.dirty = true
		return taken, true
	}
	return hand, false
}

// SetInputSlot substitui o slot diretamente (carga de save e testes).
func (be *BlockEntityWinch) SetInputSlot(stack *items.ItemStack) {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.inputSlot = stack.Clone()
	be.dirty = true
}

// Snapshot retorna uma cópia consistente do estado de movimento.
func (be *BlockEntityWinch) Snapshot() MotionState {
	be.mu.RLock()
	defer be.mu.RUnlock()
	return MotionState{
		IsRaising:          be.isRaising,
		IsTurningManually:  be.isTurningManually,
		IsTurningAutomated: be.isTurningAutomated,
		AngleRad:           be.angleRad,
		BucketDepth:        be.bucketDepth,
		MaxDepth:           be.maxDepth,
		RotatingPlayer:     be.rotatingPlayer,
		NetworkAngle:       be.netAngle,
		TurnDir:            be.netTurnDir,
		Slot:               be.inputSlot.Clone(),
	}
}

// ApplyState sobrescreve o estado com o recebido do servidor (réplica no cliente).
func (be *BlockEntityWinch) ApplyState(s MotionState) {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.isRaising = s.IsRaising
	be.isTurningManually = s.IsTurningManually
	be.isTurningAutomated = s.IsTurningAutomated && !s.IsTurningManually
	be.angleRad = s.AngleRad
	be.bucketDepth = s.BucketDepth
	be.maxDepth = s.MaxDepth
	be.rotatingPlayer = s.RotatingPlayer
	be.netAngle = s.NetworkAngle
	be.netTurnDir = s.TurnDir
	be.inputSlot = s.Slot.Clone()
}

// TakeDirty informa se houve mudança desde a última chamada e zera a marca.
func (be *BlockEntityWinch) TakeDirty() bool {
	be.mu.Lock()
	defer be.mu.Unlock()
	d := be.dirty
	be.dirty = false
	return d
}
