package client

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

// echoServer responde ao Hello com um WinchState e repassa as demais mensagens para got.
func echoServer(t *testing.T, got chan<- wnet.Message) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := wnet.Decode(data)
			if err != nil {
				continue
			}
			if _, ok := msg.(*wnet.Hello); ok {
				reply := wnet.Encode(&wnet.WinchState{Pos: util.BlockPos{X: 4, Y: 1}, Facing: util.FacingEast})
				conn.WriteMessage(websocket.BinaryMessage, reply)
				continue
			}
			got <- msg
		}
	}))
}

func TestConnectHelloAndInbox(t *testing.T) {
	got := make(chan wnet.Message, 4)
	srv := echoServer(t, got)
	defer srv.Close()

	c := NewNetworkClient("ws"+strings.TrimPrefix(srv.URL, "http"), "ana")
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	select {
	case msg := <-c.Inbox():
		ws, ok := msg.(*wnet.WinchState)
		if !ok || ws.Pos != (util.BlockPos{X: 4, Y: 1}) || ws.Facing != util.FacingEast {
			t.Fatalf("mensagem inesperada: %#v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nenhuma resposta ao Hello")
	}

	c.Send(&wnet.Interact{Kind: wnet.InteractStep, PlayerID: "ana", Elapsed: 0.1})
	select {
	case msg := <-got:
		in, ok := msg.(*wnet.Interact)
		if !ok || in.Kind != wnet.InteractStep || in.PlayerID != "ana" {
			t.Fatalf("servidor recebeu %#v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("servidor não recebeu a interação")
	}
}

func TestSendWhileDisconnectedIsNoop(t *testing.T) {
	c := NewNetworkClient("ws://127.0.0.1:1/ws", "ana")
	c.Send(&wnet.Hello{PlayerID: "ana"})
	if c.IsConnected() {
		t.Fatal("cliente não conectado")
	}
}
