package client

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"WinchWorks/shared/proto/wnet"
)

// Tamanho da fila de mensagens recebidas antes de começar a descartar.
const inboxSize = 256

// NetworkClient lida com a comunicação com o servidor WinchWorks.
// As mensagens recebidas vão para Inbox e são consumidas na thread da janela.
type NetworkClient struct {
	conn      *websocket.Conn
	url       string
	playerID  string
	connected bool
	mu        sync.RWMutex
	writeMu   sync.Mutex

	inbox chan wnet.Message

	// Chamado (na goroutine de leitura) quando a conexão cai.
	OnDisconnect func(err error)
}

func NewNetworkClient(url, playerID string) *NetworkClient {
	return &NetworkClient{
		url:      url,
		playerID: playerID,
		inbox:    make(chan wnet.Message, inboxSize),
	}
}

// Tentativas de discagem antes de desistir; o servidor pode ainda estar subindo.
const (
	dialAttempts = 10
	firstBackoff = 500 * time.Millisecond
	maxBackoff   = 4 * time.Second
)

// Connect disca com espera crescente entre tentativas e se apresenta com Hello.
func (c *NetworkClient) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	wait := firstBackoff
	var lastErr error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, _, err := dialer.Dial(c.url, nil)
		if err == nil {
			c.mu.Lock()
			c.conn, c.connected = conn, true
			c.mu.Unlock()

			log.Printf("[Network] Conectado a %s (tentativa %d)", c.url, attempt)
			go c.readLoop(conn)
			c.Send(&wnet.Hello{PlayerID: c.playerID})
			return nil
		}

		lastErr = err
		log.Printf("[Network] %s indisponível (%d/%d): %v; nova tentativa em %s", c.url, attempt, dialAttempts, err, wait)
		time.Sleep(wait)
		wait = min(wait*2, maxBackoff)
	}
	return fmt.Errorf("conectar em %s: %w", c.url, lastErr)
}

func (c *NetworkClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// PlayerID retorna o id com que o cliente se apresentou.
func (c *NetworkClient) PlayerID() string { return c.playerID }

// Inbox entrega as mensagens recebidas do servidor.
func (c *NetworkClient) Inbox() <-chan wnet.Message { return c.inbox }

// Send serializa e envia uma mensagem. Erros derrubam a conexão.
func (c *NetworkClient) Send(msg wnet.Message) {
	c.mu.RLock()
	conn, ok := c.conn, c.connected
	c.mu.RUnlock()
	if !ok {
		return
	}

	c.writeMu.Lock()
	err := conn.WriteMessage(websocket.BinaryMessage, wnet.Encode(msg))
	c.writeMu.Unlock()

	if err != nil {
		log.Printf("[Network] Falha no envio de %T, marcando desconectado: %v", msg, err)
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
}

// Close encerra a conexão.
func (c *NetworkClient) Close() {
	c.mu.Lock()
	conn := c.conn
	c.connected = false
	c.mu.Unlock()
	if conn != nil {
		c.writeMu.Lock()
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		conn.Close()
	}
}

func (c *NetworkClient) readLoop(conn *websocket.Conn) {
	var lastErr error
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Network] PÂNICO no loop de leitura: %v", r)
		}
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		conn.Close()
		if c.OnDisconnect != nil {
			c.OnDisconnect(lastErr)
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Leitura encerrada: %v", err)
			lastErr = err
			return
		}

		msg, err := wnet.Decode(data)
		if err != nil {
			log.Printf("[Network] Erro ao desempacotar mensagem: %v", err)
			continue
		}

		select {
		case c.inbox <- msg:
		default:
			log.Printf("[Network] Fila cheia, descartando %T", msg)
		}
	}
}
