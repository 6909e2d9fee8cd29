// Package notifier mantém o registro em memória dos dashboards
// conectados e faz o fan-out de "mudou alguma coisa" depois de cada
// ingest. O payload não carrega dados de negócio: o cliente refaz a
// consulta de métricas ao receber o aviso (e faz polling de backup,
// então perder um aviso não corrompe nada).
package notifier

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xavierca1/ligue-talent/internal/infra/http/middleware"
)

const (
	writeTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 50 * time.Second

	// Buffer de saída por assinante. Encheu = assinante lento demais,
	// derruba a conexão em vez de travar o broadcast.
	sendBufSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS do stream fica no proxy reverso
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event é o envelope enviado aos assinantes.
// "connected" confirma o canal; "changed" avisa que há dado novo.
type Event struct {
	Event        string `json:"event"`
	SubscriberID string `json:"subscriber_id,omitempty"`
	CandidateID  string `json:"candidate_id,omitempty"`
	ChangedAt    string `json:"changed_at,omitempty"`
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub: uma instância por processo, criada no boot e passada explícita
// para quem precisa (nada de estado global).
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP sobe a conexão para WebSocket, registra o assinante e manda
// o ack "connected" na hora. Bloqueia até a conexão cair.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// o upgrader já respondeu o erro
		return
	}

	sub := &subscriber{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.add(sub)
	defer h.remove(sub)

	go sub.writePump()
	sub.readPump() // bloqueia até desconectar
}

// BroadcastChange manda o sinal de mudança para todos os assinantes.
// Best-effort: assinante com buffer cheio é descartado na hora e os
// demais continuam recebendo. Zero assinantes = no-op.
func (h *Hub) BroadcastChange(candidateID string, changedAt time.Time) {
	msg, err := json.Marshal(Event{
		Event:       "changed",
		CandidateID: candidateID,
		ChangedAt:   changedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	// Envio e close sempre debaixo do mesmo mutex — broadcast nunca
	// escreve num canal que outro caminho acabou de fechar.
	dropped := 0
	h.mu.Lock()
	for s := range h.subscribers {
		select {
		case s.send <- msg:
		default:
			log.Printf("⚠️ Assinante %s lento demais, derrubando", s.id)
			delete(h.subscribers, s)
			close(s.send)
			dropped++
		}
	}
	h.mu.Unlock()

	for i := 0; i < dropped; i++ {
		middleware.SubscriberDisconnected()
	}
	middleware.RecordBroadcast()
}

// Count: quantos assinantes estão conectados agora.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Shutdown fecha todas as conexões. Assinante perdido no restart some
// mesmo — o cliente reconecta sozinho.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subscribers {
		close(s.send)
		delete(h.subscribers, s)
	}
}

func (h *Hub) add(s *subscriber) {
	ack, _ := json.Marshal(Event{Event: "connected", SubscriberID: s.id})
	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	s.send <- ack // buffer recém-criado, nunca bloqueia
	h.mu.Unlock()
	middleware.SubscriberConnected()
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[s]
	if ok {
		delete(h.subscribers, s)
		close(s.send)
	}
	h.mu.Unlock()
	if ok {
		middleware.SubscriberDisconnected()
	}
}

// writePump escoa o canal de saída para a conexão e manda pings.
// Erro de escrita encerra a goroutine; o readPump percebe e o assinante
// é removido — NotifierDeliveryError nunca sobe daqui.
func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump só existe para detectar desconexão e responder pong.
func (s *subscriber) readPump() {
	defer s.conn.Close()
	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
