package controllers

import (
	"encoding/json"
	"io"
	"net"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/wayfinder/pkg/session"
	"go.uber.org/zap"
)

// Client. one websocket position-feed connection.
type Client struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (c *Client) readSample() (*positionSampleRequest, error) {
	c.io.Lock()
	defer c.io.Unlock()

	h, r, err := wsutil.NextReader(c.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(c.conn, ws.StateServerSide)(h, r)
	}

	req := &positionSampleRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Receive. read one position sample off the wire and feed it to the session.
// a read error tears the client down and demotes an active session.
func (c *Client) Receive() error {
	req, err := c.readSample()
	if err != nil {
		c.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	c.hub.navigationService.PositionUpdate(req.ToSample())
	return nil
}

func (c *Client) write(x interface{}) error {
	w := wsutil.NewWriter(c.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	c.io.Lock()
	defer c.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub. registry of live feed connections; fans session state-change events out
// to every connected client.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	cs  []*Client
	ns  map[uint]*Client

	navigationService NavigationService
	log               *zap.Logger
}

func NewHub(navigationService NavigationService, log *zap.Logger) *Hub {
	hub := &Hub{
		ns:                make(map[uint]*Client),
		cs:                make([]*Client, 0),
		navigationService: navigationService,
		log:               log,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *Client {
	client := &Client{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	client.id = h.seq
	h.ns[client.id] = client
	h.cs = append(h.cs, client)

	h.seq++
	h.mu.Unlock()

	return client
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[client.id]; !ok {
		return
	}
	delete(h.ns, client.id)

	i := sort.Search(len(h.cs), func(i int) bool {
		return h.cs[i].id >= client.id
	})

	newCs := make([]*Client, len(h.cs)-1)
	copy(newCs[:i], h.cs[:i])
	copy(newCs[i:], h.cs[i+1:])
	h.cs = newCs
}

func (h *Hub) RemoveAll() {
	h.mu.Lock()
	clients := make([]*Client, len(h.cs))
	copy(clients, h.cs)
	h.mu.Unlock()

	for _, client := range clients {
		client.conn.Close()
		h.Remove(client)
	}
}

// Broadcast. push one session event to every connected client, dropping
// clients whose writes fail.
func (h *Hub) Broadcast(event session.Event) {
	h.mu.RLock()
	clients := make([]*Client, len(h.cs))
	copy(clients, h.cs)
	h.mu.RUnlock()

	payload := envelope{"event": event, "session": NewSessionResponse(h.navigationService.SessionSnapshot())}
	for _, client := range clients {
		if err := client.write(payload); err != nil {
			h.log.Warn("dropping websocket client", zap.Uint("id", client.id), zap.Error(err))
			client.conn.Close()
			h.Remove(client)
		}
	}
}
