package winch

import (
	"errors"
	"testing"

	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

type fakeWorld struct {
	winches map[util.BlockPos]*BlockEntityWinch
	hands   map[PlayerID]*items.ItemStack
	denied  map[PlayerID]bool
}

func (w *fakeWorld) TryAccess(p PlayerID, _ util.BlockPos, _ AccessFlag) bool { return !w.denied[p] }
func (w *fakeWorld) WinchAt(pos util.BlockPos) *BlockEntityWinch          { return w.winches[pos] }
func (w *fakeWorld) HeldItem(p PlayerID) *items.ItemStack                 { return w.hands[p] }
func (w *fakeWorld) SetHeldItem(p PlayerID, s *items.ItemStack)           { w.hands[p] = s }

type fakeBase struct {
	placeErr  error
	connectOK map[util.Facing]bool
	tried     []util.Facing
}

func (b *fakeBase) PlaceBlock(PlayerID, util.BlockPos, util.Facing) error { return b.placeErr }
func (b *fakeBase) TryConnect(_ util.BlockPos, f util.Facing) bool {
	b.tried = append(b.tried, f)
	return b.connectOK[f]
}

var winchPos = util.NewBlockPos(0, 1, 0)

func newTestBlock() (*BlockWinch, *fakeWorld) {
	cat := catalog.Default()
	be := NewBlockEntity(winchPos, util.FacingNorth, config.DefaultWinchTuning(), cat, fakeShaft{depth: 2})
	w := &fakeWorld{
		winches: map[util.BlockPos]*BlockEntityWinch{winchPos: be},
		hands:   map[PlayerID]*items.ItemStack{"ana": cat.NewStack("woodbucket")},
		denied:  map[PlayerID]bool{"intruso": true},
	}
	return NewBlockWinch(w, &fakeBase{}, 0.1), w
}

func TestTryPlaceProbesUpThenDown(t *testing.T) {
	tests := []struct {
		name      string
		connectOK map[util.Facing]bool
		want      []util.Facing
	}{
		{"conecta acima", map[util.Facing]bool{util.FacingUp: true}, []util.Facing{util.FacingUp}},
		{"cai para baixo", map[util.Facing]bool{util.FacingDown: true}, []util.Facing{util.FacingUp, util.FacingDown}},
		{"sem rede", nil, []util.Facing{util.FacingUp, util.FacingDown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &fakeBase{connectOK: tt.connectOK}
			b := NewBlockWinch(&fakeWorld{}, base, 0.1)
			if err := b.TryPlace("ana", winchPos, util.FacingEast); err != nil {
				t.Fatal(err)
			}
			if len(base.tried) != len(tt.want) {
				t.Fatalf("tentativas %v, esperado %v", base.tried, tt.want)
			}
			for i := range tt.want {
				if base.tried[i] != tt.want[i] {
					t.Fatalf("tentativas %v, esperado %v", base.tried, tt.want)
				}
			}
		})
	}
}

func TestTryPlaceErrors(t *testing.T) {
	b := NewBlockWinch(&fakeWorld{}, &fakeBase{}, 0.1)
	if err := b.TryPlace("ana", winchPos, util.FacingUp); !errors.Is(err, ErrInvalidFacing) {
		t.Fatalf("face vertical deveria falhar com ErrInvalidFacing, veio %v", err)
	}
	boom := errors.New("ocupado")
	b.Base = &fakeBase{placeErr: boom}
	if err := b.TryPlace("ana", winchPos, util.FacingNorth); !errors.Is(err, boom) {
		t.Fatalf("erro da base deveria ser propagado, veio %v", err)
	}
}

func TestInteractionFlow(t *testing.T) {
	b, w := newTestBlock()
	slot := Selection{Pos: winchPos, Box: BoxSlot}
	crank := Selection{Pos: winchPos, Box: BoxCrank}

	if !b.OnInteractStart("ana", slot, false) || w.hands["ana"] != nil {
		t.Fatal("clicar no slot deveria pendurar o balde")
	}
	if b.OnInteractStart("intruso", crank, false) {
		t.Fatal("jogador sem acesso não pode girar")
	}
	if !b.OnInteractStart("ana", crank, false) {
		t.Fatal("ana deveria começar a descer")
	}
	if b.OnInteractStep(5, "bia", crank) {
		t.Fatal("passo de outro jogador deve ser ignorado")
	}
	if !b.OnInteractStep(5, "ana", crank) {
		t.Fatal("passo do jogador que gira deveria avançar")
	}
	if d := w.winches[winchPos].Snapshot().BucketDepth; d > 0.1001 {
		t.Fatalf("cada passo vale o tempo nominal, profundidade %v", d)
	}

	b.OnInteractStop(0, "bia", crank)
	if w.winches[winchPos].RotationPlayer() != "ana" {
		t.Fatal("stop de outro jogador não pode liberar o giro")
	}
	b.OnInteractStop(0, "ana", crank)
	if w.winches[winchPos].RotationPlayer() != "" {
		t.Fatal("stop deveria liberar o giro")
	}
	if !b.OnInteractCancel(0, "bia", crank, CancelMovedAway) {
		t.Fatal("cancelamento sempre reconhece")
	}
	if b.OnInteractStart("ana", Selection{Pos: util.NewBlockPos(9, 9, 9), Box: BoxCrank}, false) {
		t.Fatal("posição sem guincho não aceita interação")
	}
}

func TestInteractionHelp(t *testing.T) {
	b, _ := newTestBlock()
	slot := Selection{Pos: winchPos, Box: BoxSlot}
	crank := Selection{Pos: winchPos, Box: BoxCrank}

	help := b.InteractionHelp(slot)
	if len(help) != 1 || help[0].LangCode != LangAddRemoveItems {
		t.Fatalf("slot deveria mostrar só adicionar/remover, veio %+v", help)
	}
	if help := b.InteractionHelp(crank); len(help) != 0 {
		t.Fatalf("manivela com slot vazio não tem dicas, veio %+v", help)
	}

	b.OnInteractStart("ana", slot, false)
	help = b.InteractionHelp(crank)
	if len(help) != 2 || help[0].LangCode != LangLower || help[1].LangCode != LangRaise || help[1].HotKey != HotKeySneak {
		t.Fatalf("dicas da manivela incorretas: %+v", help)
	}
}

func TestHasMechPowerConnectorAt(t *testing.T) {
	tests := []struct {
		variant, face util.Facing
	}{
		{util.FacingNorth, util.FacingWest},
		{util.FacingSouth, util.FacingEast},
		{util.FacingEast, util.FacingSouth},
		{util.FacingWest, util.FacingNorth},
	}
	all := []util.Facing{util.FacingNorth, util.FacingEast, util.FacingSouth, util.FacingWest, util.FacingUp, util.FacingDown}
	for _, tt := range tests {
		for _, f := range all {
			want := f == tt.face
			if got := HasMechPowerConnectorAt(tt.variant, f); got != want {
				t.Errorf("variante %s face %s = %v, esperado %v", tt.variant, f, got, want)
			}
		}
	}
}
