// Package scene mantém as réplicas dos guinchos recebidas do servidor e um renderizador por guincho.
package scene

import (
	"cmp"
	"log"
	"slices"

	"WinchWorks/cliente/internal/render"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/items"
	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

type replica struct {
	be       *winch.BlockEntityWinch
	renderer *render.WinchRenderer
	failed   bool // Renderizador não pôde ser criado; não tenta a cada frame
}

// Scene é a visão local do mundo: réplicas dos guinchos e a mão do jogador.
// Só é usada na thread da janela.
type Scene struct {
	svc     render.Services
	tuning  config.WinchTuning
	catalog *catalog.Catalog
	player  winch.PlayerID

	winches map[util.BlockPos]*replica
	hand    *items.ItemStack

	block *winch.BlockWinch
}

var _ winch.World = (*Scene)(nil)

func New(svc render.Services, tuning config.WinchTuning, cat *catalog.Catalog, player string) *Scene {
	s := &Scene{
		svc:     svc,
		tuning:  tuning,
		catalog: cat,
		player:  winch.PlayerID(player),
		winches: make(map[util.BlockPos]*replica),
	}
	// Lado cliente só usa o bloco para os textos de ajuda.
	s.block = winch.NewBlockWinch(s, nil, tuning.NominalStepSeconds)
	return s
}

// Apply processa uma mensagem do servidor. Mensagens de outros tipos são ignoradas.
func (s *Scene) Apply(msg wnet.Message) {
	switch m := msg.(type) {
	case *wnet.WinchState:
		s.applyWinch(m)
	case *wnet.HandState:
		if winch.PlayerID(m.PlayerID) == s.player {
			s.hand = m.Item.Clone()
		}
	}
}

func (s *Scene) applyWinch(m *wnet.WinchState) {
	rep, ok := s.winches[m.Pos]
	if !ok || rep.be.Facing != m.Facing {
		if ok {
			s.drop(m.Pos)
		}
		rep = &replica{be: winch.NewBlockEntity(m.Pos, m.Facing, s.tuning, s.catalog, nil)}
		s.winches[m.Pos] = rep
		log.Printf("[Scene] Guincho %s (%s) recebido", m.Pos, m.Facing)
	}
	rep.be.ApplyState(m.State)

	if rep.renderer == nil && !rep.failed {
		r, err := render.NewWinchRenderer(m.Pos, m.Facing, rep.be, s.svc, s.tuning, s.catalog)
		if err != nil {
			log.Printf("[Scene] Renderizador do guincho %s não criado: %v", m.Pos, err)
			rep.failed = true
			return
		}
		rep.renderer = r
	}
}

func (s *Scene) drop(pos util.BlockPos) {
	rep, ok := s.winches[pos]
	if !ok {
		return
	}
	if rep.renderer != nil {
		rep.renderer.Dispose()
	}
	delete(s.winches, pos)
}

// Render desenha todos os guinchos.
func (s *Scene) Render(f render.Frame) {
	for _, pos := range s.Positions() {
		if r := s.winches[pos].renderer; r != nil {
			r.OnRenderFrame(f)
		}
	}
}

// Positions retorna as posições dos guinchos em ordem estável.
func (s *Scene) Positions() []util.BlockPos {
	out := make([]util.BlockPos, 0, len(s.winches))
	for pos := range s.winches {
		out = append(out, pos)
	}
	slices.SortFunc(out, func(a, b util.BlockPos) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
	})
	return out
}

// Renderer retorna o renderizador do guincho, se houver.
func (s *Scene) Renderer(pos util.BlockPos) *render.WinchRenderer {
	if rep, ok := s.winches[pos]; ok {
		return rep.renderer
	}
	return nil
}

// Help retorna as dicas de interação para a seleção.
func (s *Scene) Help(sel winch.Selection) []winch.WorldInteraction {
	if s.WinchAt(sel.Pos) == nil {
		return nil
	}
	return s.block.InteractionHelp(sel)
}

// Hand retorna o que o jogador segura.
func (s *Scene) Hand() *items.ItemStack { return s.hand }

// Dispose libera as malhas de todos os guinchos.
func (s *Scene) Dispose() {
	for pos := range s.winches {
		s.drop(pos)
	}
}

// WinchAt implementa winch.World sobre as réplicas.
func (s *Scene) WinchAt(pos util.BlockPos) *winch.BlockEntityWinch {
	if rep, ok := s.winches[pos]; ok {
		return rep.be
	}
	return nil
}

// TryAccess: o servidor é quem decide; localmente tudo é permitido.
func (s *Scene) TryAccess(winch.PlayerID, util.BlockPos, winch.AccessFlag) bool { return true }

func (s *Scene) HeldItem(winch.PlayerID) *items.ItemStack { return s.hand.Clone() }

// SetHeldItem é ignorado: a mão só muda quando o servidor manda HandState.
func (s *Scene) SetHeldItem(winch.PlayerID, *items.ItemStack) {}
