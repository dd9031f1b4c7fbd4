package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"WinchWorks/shared/proto/wnet"
)

const (
	peerQueue    = 256 // Mensagens pendentes por cliente antes de derrubá-lo
	writeWait    = 5 * time.Second
	maxFrameSize = 64 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// peer é um cliente conectado. Só writeLoop escreve na conexão.
type peer struct {
	conn *websocket.Conn
	out  chan []byte
}

func (p *peer) writeLoop() {
	defer p.conn.Close()
	for data := range p.out {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("[Hub] Escrita para %s falhou: %v", p.conn.RemoteAddr(), err)
			// Fechar derruba o laço de leitura, que remove o peer e fecha out.
			p.conn.Close()
			for range p.out {
			}
			return
		}
	}
}

// Hub distribui as mensagens da simulação. Enviar nunca bloqueia: um cliente lento
// demais para esvaziar a fila é desconectado.
type Hub struct {
	mu    sync.RWMutex
	peers map[*websocket.Conn]*peer
}

func newHub() *Hub {
	return &Hub{peers: make(map[*websocket.Conn]*peer)}
}

func (h *Hub) add(conn *websocket.Conn) {
	p := &peer{conn: conn, out: make(chan []byte, peerQueue)}
	h.mu.Lock()
	h.peers[conn] = p
	n := len(h.peers)
	h.mu.Unlock()

	go p.writeLoop()
	log.Printf("[Hub] %s conectou (%d clientes)", conn.RemoteAddr(), n)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.peers[conn]
	if !ok {
		return
	}
	delete(h.peers, conn)
	// Fechado sob o lock: enqueue também roda sob ele e nunca vê o canal fechado.
	close(p.out)
	log.Printf("[Hub] %s saiu (%d clientes)", conn.RemoteAddr(), len(h.peers))
}

// Len retorna quantos clientes estão conectados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// enqueue exige h.mu (leitura ou escrita).
func (h *Hub) enqueue(p *peer, data []byte) {
	select {
	case p.out <- data:
	default:
		log.Printf("[Hub] Fila de %s cheia, desconectando", p.conn.RemoteAddr())
		p.conn.Close()
	}
}

// Send envia uma mensagem a um único cliente.
func (h *Hub) Send(conn *websocket.Conn, m wnet.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.peers[conn]
	if !ok {
		log.Printf("[Hub] Mensagem %d para cliente desconhecido descartada", m.Type())
		return
	}
	h.enqueue(p, wnet.Encode(m))
}

// Broadcast codifica uma vez e envia a todos os clientes.
func (h *Hub) Broadcast(m wnet.Message) {
	data := wnet.Encode(m)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		h.enqueue(p, data)
	}
}

// serveWs atende um cliente: registra no hub e repassa tudo que ele manda para a simulação
// até a conexão cair.
func serveWs(hub *Hub, sim *Simulation, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade recusado para %s: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(maxFrameSize)
	hub.add(conn)
	defer func() {
		sim.Post(simEvent{conn: conn, left: true})
		hub.remove(conn)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[WS] %s encerrou: %v", conn.RemoteAddr(), err)
			return
		}
		msg, err := wnet.Decode(data)
		if err != nil {
			log.Printf("[WS] Quadro inválido de %s: %v", conn.RemoteAddr(), err)
			continue
		}
		sim.Post(simEvent{conn: conn, msg: msg})
	}
}
