package interact

import (
	"testing"

	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

type recorder struct{ sent []*wnet.Interact }

func (r *recorder) Send(msg wnet.Message) { r.sent = append(r.sent, msg.(*wnet.Interact)) }

func (r *recorder) kinds() []wnet.InteractKind {
	out := make([]wnet.InteractKind, len(r.sent))
	for i, m := range r.sent {
		out[i] = m.Kind
	}
	return out
}

var crank = &Target{Pos: util.BlockPos{X: 1, Y: 2, Z: 3}, Box: winch.BoxCrank}

func TestCrankHoldAndRelease(t *testing.T) {
	rec := &recorder{}
	c := New("ana", 0.1, 5, rec)

	c.Update(Input{Target: crank, Pressed: true, Down: true, Sneak: true})
	if !c.Active() {
		t.Fatal("manivela deveria ficar ativa")
	}
	if !rec.sent[0].Sneak || rec.sent[0].PlayerID != "ana" {
		t.Fatalf("start inesperado: %+v", rec.sent[0])
	}

	// 0.25 s em frames de 0.05 s: dois passos
	for i := 0; i < 5; i++ {
		c.Update(Input{Target: crank, Down: true, Dt: 0.05, Distance: 1})
	}
	c.Update(Input{Target: crank, Down: false, Dt: 0.05})

	want := []wnet.InteractKind{wnet.InteractStart, wnet.InteractStep, wnet.InteractStep, wnet.InteractStop}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("mensagens %v, esperado %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mensagens %v, esperado %v", got, want)
		}
	}
	if c.Active() {
		t.Error("soltar o botão deveria encerrar")
	}
}

func TestMovingAwayCancels(t *testing.T) {
	rec := &recorder{}
	c := New("ana", 0.1, 5, rec)
	c.Update(Input{Target: crank, Pressed: true, Down: true})
	c.Update(Input{Target: crank, Down: true, Dt: 0.016, Distance: 9})

	last := rec.sent[len(rec.sent)-1]
	if last.Kind != wnet.InteractCancel || last.CancelReason != winch.CancelMovedAway {
		t.Fatalf("esperado cancelamento por distância, veio %+v", last)
	}
	if c.Active() {
		t.Error("cancelamento deveria encerrar")
	}
	c.Cancel(winch.CancelDisconnected)
	if len(rec.sent) != 2 {
		t.Errorf("cancelar sem interação não deveria enviar nada (%d mensagens)", len(rec.sent))
	}
}

func TestSlotIsOneShot(t *testing.T) {
	rec := &recorder{}
	c := New("ana", 0.1, 5, rec)
	slot := &Target{Pos: crank.Pos, Box: winch.BoxSlot}
	c.Update(Input{Target: slot, Pressed: true, Down: true})
	c.Update(Input{Target: slot, Down: true, Dt: 0.5})
	if len(rec.sent) != 1 || rec.sent[0].Box != winch.BoxSlot || c.Active() {
		t.Fatalf("slot deveria mandar só o início: %v", rec.kinds())
	}
}

func TestNoTargetNoMessage(t *testing.T) {
	rec := &recorder{}
	c := New("ana", 0.1, 5, rec)
	c.Update(Input{Pressed: true, Down: true})
	if len(rec.sent) != 0 {
		t.Fatal("clique no vazio não deveria enviar nada")
	}
}

func TestServerReleaseDropsHeldCrank(t *testing.T) {
	rec := &recorder{}
	c := New("ana", 0.1, 5, rec)
	c.Update(Input{Target: crank, Pressed: true, Down: true})

	// Réplica ainda não chegou: segue segurando.
	c.Update(Input{Target: crank, Down: true, Dt: 0.05})
	if !c.Active() {
		t.Fatal("sem confirmação do servidor a manivela continua segura")
	}
	c.Update(Input{Target: crank, Down: true, Dt: 0.05, Holder: "ana"})
	sent := len(rec.sent)

	// Fim de curso: o servidor soltou a manivela.
	c.Update(Input{Target: crank, Down: true, Dt: 0.2, Holder: ""})
	if c.Active() {
		t.Fatal("a réplica sem este jogador na manivela deveria encerrar a interação")
	}
	if len(rec.sent) != sent {
		t.Fatalf("encerramento pelo servidor não deveria enviar nada: %v", rec.kinds()[sent:])
	}

	c.Update(Input{Target: crank, Pressed: true, Down: true, Sneak: true})
	if !c.Active() || rec.sent[len(rec.sent)-1].Kind != wnet.InteractStart {
		t.Fatal("novo clique deveria começar outra interação")
	}
}
