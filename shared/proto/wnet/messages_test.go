package wnet

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

func TestWinchStateSurvivesEnvelope(t *testing.T) {
	slot := items.New(items.ClassBlock, "woodbucket", 1)
	slot.Attributes = map[string]string{"color": "oak"}
	slot.Contents = items.New(items.ClassItem, "waterportion", 1000)

	in := &WinchState{
		Pos:    util.NewBlockPos(-4, 70, 12),
		Facing: util.FacingWest,
		State: winch.MotionState{
			IsRaising:         true,
			IsTurningManually: true,
			AngleRad:          -2.5,
			BucketDepth:       3.25,
			MaxDepth:          8,
			RotatingPlayer:    "ana",
			TurnDir:           winch.Counterclockwise,
			Slot:              slot,
		},
	}
	m, err := Decode(Encode(in))
	if err != nil {
		t.Fatal(err)
	}
	out, ok := m.(*WinchState)
	if !ok {
		t.Fatalf("tipo decodificado %T", m)
	}
	if out.Pos != in.Pos || out.Facing != in.Facing {
		t.Fatalf("posição %v/%v, esperado %v/%v", out.Pos, out.Facing, in.Pos, in.Facing)
	}
	got, want := out.State, in.State
	if got.AngleRad != want.AngleRad || got.BucketDepth != want.BucketDepth || got.MaxDepth != want.MaxDepth ||
		got.IsRaising != want.IsRaising || got.IsTurningManually != want.IsTurningManually ||
		got.RotatingPlayer != want.RotatingPlayer || got.TurnDir != want.TurnDir {
		t.Fatalf("estado difere: %+v vs %+v", got, want)
	}
	if !got.Slot.Equals(want.Slot, nil) {
		t.Fatalf("slot difere: %+v vs %+v", got.Slot, want.Slot)
	}
}

func TestEmptySlotStaysNil(t *testing.T) {
	m, err := Decode(Encode(&WinchState{Pos: util.NewBlockPos(1, 1, 1)}))
	if err != nil {
		t.Fatal(err)
	}
	if m.(*WinchState).State.Slot != nil {
		t.Fatal("slot vazio deveria continuar nil")
	}
}

func TestInteractKinds(t *testing.T) {
	tests := []Interact{
		{Kind: InteractStart, PlayerID: "ana", Pos: util.NewBlockPos(0, 1, 0), Box: 1, Sneak: true},
		{Kind: InteractStep, PlayerID: "ana", Pos: util.NewBlockPos(0, 1, 0), Box: 1, Elapsed: 0.1},
		{Kind: InteractCancel, PlayerID: "bia", Pos: util.NewBlockPos(-1, -1, -1), CancelReason: winch.CancelMovedAway},
	}
	for _, in := range tests {
		m, err := Decode(Encode(&in))
		if err != nil {
			t.Fatal(err)
		}
		if out := m.(*Interact); *out != in {
			t.Errorf("interação %+v decodificada como %+v", in, *out)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	env := Envelope{Type: 99}
	if _, err := Decode(env.Marshal()); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("esperado ErrUnknownType, veio %v", err)
	}
	if _, err := Decode([]byte{0x0a, 0xff}); err == nil {
		t.Fatal("bytes truncados deveriam falhar")
	}
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	payload := (&Hello{PlayerID: "ana"}).Marshal()
	payload = protowire.AppendTag(payload, 42, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 7)
	env := Envelope{Type: MsgHello, Payload: payload}
	m, err := Decode(env.Marshal())
	if err != nil {
		t.Fatal(err)
	}
	if m.(*Hello).PlayerID != "ana" {
		t.Fatal("campo desconhecido corrompeu a mensagem")
	}
}
