// Package interact transforma o estado do mouse a cada frame nas fases de interação
// enviadas ao servidor (início, passos, parada e cancelamento).
package interact

import (
	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// Target é a caixa de seleção sob o cursor.
type Target struct {
	Pos util.BlockPos
	Box int32
}

// Input é o estado de um frame.
type Input struct {
	Target   *Target // nil quando o cursor não mira nenhum guincho
	Pressed  bool    // Botão de uso apertado neste frame
	Down     bool    // Botão de uso segurado
	Sneak    bool
	Distance float32 // Distância do jogador até o alvo travado
	Holder   string  // Quem gira o guincho travado, segundo a última réplica
	Dt       float32
}

// Sender entrega mensagens ao servidor.
type Sender interface {
	Send(msg wnet.Message)
}

// Controller segura no máximo uma interação de manivela por vez.
type Controller struct {
	Player       string
	StepInterval float32 // Intervalo entre passos enviados
	Reach        float32 // Além disso a interação é cancelada
	Out          Sender

	active    bool
	confirmed bool // A réplica já mostrou este jogador na manivela
	target    Target
	held      float32
	sinceStep float32
}

func New(player string, stepInterval, reach float32, out Sender) *Controller {
	return &Controller{Player: player, StepInterval: stepInterval, Reach: reach, Out: out}
}

// Active indica se há uma manivela segurada.
func (c *Controller) Active() bool { return c.active }

// Locked retorna o alvo da interação em curso.
func (c *Controller) Locked() (Target, bool) { return c.target, c.active }

// Update processa um frame.
func (c *Controller) Update(in Input) {
	if c.active {
		c.updateHeld(in)
		return
	}
	if !in.Pressed || in.Target == nil {
		return
	}

	c.send(wnet.InteractStart, *in.Target, in.Sneak, 0)
	// O slot é uma ação única; só a manivela é segurada.
	if in.Target.Box != winch.BoxCrank {
		return
	}
	c.active = true
	c.confirmed = false
	c.target = *in.Target
	c.held = 0
	c.sinceStep = 0
}

func (c *Controller) updateHeld(in Input) {
	c.held += in.Dt

	if !in.Down {
		c.send(wnet.InteractStop, c.target, false, c.held)
		c.active = false
		return
	}
	// O servidor encerra o giro sozinho no fim do curso; a réplica deixa de mostrar este jogador.
	if in.Holder == c.Player {
		c.confirmed = true
	} else if c.confirmed {
		c.active = false
		return
	}
	if c.Reach > 0 && in.Distance > c.Reach {
		c.Cancel(winch.CancelMovedAway)
		return
	}

	c.sinceStep += in.Dt
	for c.sinceStep >= c.StepInterval && c.StepInterval > 0 {
		c.sinceStep -= c.StepInterval
		c.send(wnet.InteractStep, c.target, false, c.held)
	}
}

// Cancel interrompe a interação em curso, se houver.
func (c *Controller) Cancel(reason winch.CancelReason) {
	if !c.active {
		return
	}
	c.Out.Send(&wnet.Interact{
		Kind:         wnet.InteractCancel,
		PlayerID:     c.Player,
		Pos:          c.target.Pos,
		Box:          c.target.Box,
		Elapsed:      c.held,
		CancelReason: reason,
	})
	c.active = false
}

func (c *Controller) send(kind wnet.InteractKind, t Target, sneak bool, elapsed float32) {
	c.Out.Send(&wnet.Interact{
		Kind:     kind,
		PlayerID: c.Player,
		Pos:      t.Pos,
		Box:      t.Box,
		Sneak:    sneak,
		Elapsed:  elapsed,
	})
}
