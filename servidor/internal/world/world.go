// Package world mantém o estado autoritativo do servidor: guinchos, redes mecânicas,
// mãos dos jogadores e claims.
//
// World não é seguro para uso concorrente; pertence ao loop de simulação.
package world

import (
	"cmp"
	"errors"
	"log"
	"slices"

	"WinchWorks/servidor/internal/mech"
	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

var (
	ErrOccupied = errors.New("posição ocupada")
	ErrNoAccess = errors.New("sem permissão na região")
)

// World é o mundo do servidor.
type World struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	block   *winch.BlockWinch

	winches    map[util.BlockPos]*winch.BlockEntityWinch
	shaftDepth map[util.BlockPos]float32
	networks   map[util.BlockPos]*mech.Network
	hands      map[winch.PlayerID]*items.ItemStack
	joined     map[winch.PlayerID]bool

	handChanges *util.UniqueQueue[winch.PlayerID, *items.ItemStack]
}

// New cria um mundo vazio com as redes mecânicas da configuração.
func New(cfg *config.Config, cat *catalog.Catalog) *World {
	w := &World{
		cfg:         cfg,
		catalog:     cat,
		winches:     make(map[util.BlockPos]*winch.BlockEntityWinch),
		shaftDepth:  make(map[util.BlockPos]float32),
		networks:    make(map[util.BlockPos]*mech.Network),
		hands:       make(map[winch.PlayerID]*items.ItemStack),
		joined:      make(map[winch.PlayerID]bool),
		handChanges: util.NewUniqueQueue[winch.PlayerID, *items.ItemStack](),
	}
	w.block = winch.NewBlockWinch(w, w, cfg.Winch.NominalStepSeconds)
	for i, src := range cfg.MechSources {
		n := mech.NewNetwork(i+1, src)
		w.networks[n.Source] = n
	}
	return w
}

// Populate coloca os guinchos do save; sem save, usa os da configuração.
func (w *World) Populate(saved []*winch.SavedWinch) {
	for _, p := range w.cfg.Winches {
		w.shaftDepth[util.NewBlockPos(p.X, p.Y, p.Z)] = p.ShaftDepth
	}

	if len(saved) > 0 {
		for _, sw := range saved {
			if err := w.block.TryPlace("", sw.Pos, sw.Facing); err != nil {
				log.Printf("[World] Guincho salvo em %s ignorado: %v", sw.Pos, err)
				continue
			}
			w.winches[sw.Pos].Restore(sw)
		}
		log.Printf("[World] %d guinchos carregados do save", len(w.winches))
		return
	}

	for _, p := range w.cfg.Winches {
		facing, err := util.ParseFacing(p.Facing)
		if err != nil {
			log.Printf("[World] Guincho (%d,%d,%d): %v", p.X, p.Y, p.Z, err)
			continue
		}
		if err := w.block.TryPlace("", util.NewBlockPos(p.X, p.Y, p.Z), facing); err != nil {
			log.Printf("[World] %v", err)
		}
	}
	log.Printf("[World] %d guinchos criados da configuração", len(w.winches))
}

// PlaceBlock cria a entidade do guincho. Jogador vazio é o próprio servidor.
func (w *World) PlaceBlock(player winch.PlayerID, pos util.BlockPos, facing util.Facing) error {
	if _, ok := w.winches[pos]; ok {
		return ErrOccupied
	}
	if _, ok := w.networks[pos]; ok {
		return ErrOccupied
	}
	if player != "" && !w.TryAccess(player, pos, winch.AccessBuild) {
		return ErrNoAccess
	}
	w.winches[pos] = winch.NewBlockEntity(pos, facing, w.cfg.Winch, w.catalog, w)
	return nil
}

// TryConnect liga o guincho à rede vizinha pela face: uma fonte ou outro guincho já conectado.
func (w *World) TryConnect(pos util.BlockPos, face util.Facing) bool {
	be := w.winches[pos]
	if be == nil {
		return false
	}
	neighbor := pos.Offset(face)
	if n, ok := w.networks[neighbor]; ok {
		be.SetNetwork(n)
		log.Printf("[World] Guincho %s conectado à rede %d", pos, n.ID)
		return true
	}
	if other := w.winches[neighbor]; other != nil && other.Network() != nil {
		be.SetNetwork(other.Network())
		return true
	}
	return false
}

func (w *World) WinchAt(pos util.BlockPos) *winch.BlockEntityWinch {
	return w.winches[pos]
}

// Winches retorna todos os guinchos em ordem estável.
func (w *World) Winches() []*winch.BlockEntityWinch {
	out := make([]*winch.BlockEntityWinch, 0, len(w.winches))
	for _, be := range w.winches {
		out = append(out, be)
	}
	slices.SortFunc(out, func(a, b *winch.BlockEntityWinch) int {
		return compareKey(a.Pos, b.Pos)
	})
	return out
}

func compareKey(a, b util.BlockPos) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
}

// Tick avança as redes e os guinchos acionados por elas.
func (w *World) Tick(dt float32) {
	for _, n := range w.networks {
		n.Tick(dt)
	}
	for _, be := range w.winches {
		be.TickAutomated(dt)
	}
}

// TakeDirty retorna os guinchos que mudaram desde a última chamada.
func (w *World) TakeDirty() []*winch.BlockEntityWinch {
	var out []*winch.BlockEntityWinch
	for _, be := range w.Winches() {
		if be.TakeDirty() {
			out = append(out, be)
		}
	}
	return out
}
