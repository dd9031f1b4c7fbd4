package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"WinchWorks/shared/proto/wnet"
	"WinchWorks/shared/util"
)

func startHub(t *testing.T) (*Hub, *Simulation, string) {
	t.Helper()
	hub := newHub()
	sim := &Simulation{events: make(chan simEvent, 16)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, sim, w, r)
	}))
	t.Cleanup(srv.Close)
	return hub, sim, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func nextEvent(t *testing.T, sim *Simulation) simEvent {
	t.Helper()
	select {
	case ev := <-sim.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("nenhum evento chegou à simulação")
	}
	return simEvent{}
}

func TestHubForwardsAndBroadcasts(t *testing.T) {
	hub, sim, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.WriteMessage(websocket.BinaryMessage, wnet.Encode(&wnet.Hello{PlayerID: "ana"}))
	ev := nextEvent(t, sim)
	if h, ok := ev.msg.(*wnet.Hello); !ok || h.PlayerID != "ana" {
		t.Fatalf("evento inesperado: %#v", ev)
	}
	if hub.Len() != 1 {
		t.Fatalf("%d clientes no hub, esperado 1", hub.Len())
	}

	hub.Broadcast(&wnet.WinchState{Pos: util.BlockPos{X: 2, Y: 5, Z: -1}, Facing: util.FacingWest})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	msg, err := wnet.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if ws, ok := msg.(*wnet.WinchState); !ok || ws.Pos != (util.BlockPos{X: 2, Y: 5, Z: -1}) {
		t.Fatalf("broadcast inesperado: %#v", msg)
	}
}

func TestHubReportsLeave(t *testing.T) {
	hub, sim, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	conn.WriteMessage(websocket.BinaryMessage, wnet.Encode(&wnet.Hello{PlayerID: "bia"}))
	nextEvent(t, sim)
	conn.Close()

	if ev := nextEvent(t, sim); !ev.left {
		t.Fatalf("esperado evento de saída, veio %#v", ev)
	}
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("cliente continua no hub depois de sair")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
