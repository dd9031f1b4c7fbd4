package main

import (
	"log"
	"time"

	"WinchWorks/servidor/internal/world"
	"WinchWorks/shared/config"
	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/winch"

	"github.com/gorilla/websocket"
)

// simEvent é uma mensagem de um cliente (ou sua desconexão) entregue ao loop de simulação.
type simEvent struct {
	conn *websocket.Conn
	msg  wnet.Message
	left bool
}

// Simulation é dona do mundo: todo acesso a ele acontece na goroutine de Run.
type Simulation struct {
	cfg   *config.Config
	world *world.World
	hub   *Hub
	store *winch.Store

	events  chan simEvent
	players map[*websocket.Conn]winch.PlayerID
	conns   map[winch.PlayerID]*websocket.Conn
}

func NewSimulation(cfg *config.Config, w *world.World, hub *Hub, store *winch.Store) *Simulation {
	return &Simulation{
		cfg:     cfg,
		world:   w,
		hub:     hub,
		store:   store,
		events:  make(chan simEvent, 1024),
		players: make(map[*websocket.Conn]winch.PlayerID),
		conns:   make(map[winch.PlayerID]*websocket.Conn),
	}
}

// Post entrega um evento ao loop. Pode ser chamado de qualquer goroutine.
func (s *Simulation) Post(ev simEvent) {
	s.events <- ev
}

// Run executa o loop de ticks até stop ser fechado; salva tudo ao sair.
func (s *Simulation) Run(stop <-chan struct{}) {
	hz := s.cfg.TickRateHz
	if hz <= 0 {
		hz = 20
	}
	dt := float32(1) / float32(hz)
	tick := time.NewTicker(time.Second / time.Duration(hz))
	defer tick.Stop()

	saveEvery := time.Duration(s.cfg.AutoSaveSeconds) * time.Second
	if saveEvery <= 0 {
		saveEvery = 30 * time.Second
	}
	autosave := time.NewTicker(saveEvery)
	defer autosave.Stop()

	log.Printf("[Sim] Loop iniciado a %d Hz", hz)
	for {
		select {
		case <-stop:
			s.saveAll()
			return
		case ev := <-s.events:
			s.guard("evento", func() { s.handle(ev) })
		case <-tick.C:
			s.guard("tick", func() {
				s.world.Tick(dt)
				s.flush()
			})
		case <-autosave.C:
			s.guard("autosave", s.saveAll)
		}
	}
}

// guard isola pânicos de um passo para não derrubar o loop inteiro.
func (s *Simulation) guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Sim] Recuperado de pânico no %s: %v", what, r)
		}
	}()
	fn()
}

func (s *Simulation) handle(ev simEvent) {
	if ev.left {
		if p, ok := s.players[ev.conn]; ok {
			s.world.Leave(p)
			delete(s.players, ev.conn)
			delete(s.conns, p)
			log.Printf("[Sim] %s saiu", p)
		}
		return
	}

	switch m := ev.msg.(type) {
	case *wnet.Hello:
		p := winch.PlayerID(m.PlayerID)
		if p == "" {
			return
		}
		s.players[ev.conn] = p
		s.conns[p] = ev.conn
		s.world.Join(p)
		log.Printf("[Sim] %s entrou", p)
		for _, be := range s.world.Winches() {
			s.hub.Send(ev.conn, stateOf(be))
		}
	case *wnet.Interact:
		p, ok := s.players[ev.conn]
		if !ok {
			return
		}
		// O jogador vem da conexão; o campo da mensagem não é confiável.
		m.PlayerID = string(p)
		s.world.Handle(m)
	}
	s.flush()
}

// flush replica os guinchos alterados e as mãos que mudaram.
func (s *Simulation) flush() {
	for _, be := range s.world.TakeDirty() {
		s.hub.Broadcast(stateOf(be))
	}
	for _, hc := range s.world.TakeHandChanges() {
		if conn, ok := s.conns[hc.Player]; ok {
			s.hub.Send(conn, &wnet.HandState{PlayerID: string(hc.Player), Item: hc.Item})
		}
	}
}

func (s *Simulation) saveAll() {
	if s.store == nil {
		return
	}
	n := 0
	for _, be := range s.world.Winches() {
		if err := s.store.Save(be); err == nil {
			n++
		}
	}
	log.Printf("[Persistence] %d guinchos salvos", n)
}

func stateOf(be *winch.BlockEntityWinch) *wnet.WinchState {
	return &wnet.WinchState{Pos: be.Pos, Facing: be.Facing, State: be.Snapshot()}
}
