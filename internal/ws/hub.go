package ws

import (
	"encoding/json"
	"sync"

	"criavo/internal/models"
)

// Client represents a single WebSocket connection scoped to a company.
type Client struct {
	UserID    uint
	CompanyID uint
	Role      string
	Send      chan []byte
	hub       *ActivityHub
	mu        sync.Mutex
	closed    bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// trySend enqueues a frame unless the client is closed or its buffer is full.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// ActivityHub broadcasts committed ledger entries and tracked sales to the
// company's connected dashboards.
type ActivityHub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	byCompany map[uint]map[*Client]struct{}
}

func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		clients:   make(map[*Client]struct{}),
		byCompany: make(map[uint]map[*Client]struct{}),
	}
}

func (h *ActivityHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
	if h.byCompany[c.CompanyID] == nil {
		h.byCompany[c.CompanyID] = make(map[*Client]struct{})
	}
	h.byCompany[c.CompanyID][c] = struct{}{}
}

func (h *ActivityHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byCompany[c.CompanyID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byCompany, c.CompanyID)
		}
	}
}

func (h *ActivityHub) broadcastToCompany(companyID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byCompany[companyID]
	if m == nil {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

// PublishTransaction implements service.ActivityPublisher.
func (h *ActivityHub) PublishTransaction(companyID uint, tx *models.WalletTransaction) {
	h.broadcastToCompany(companyID, map[string]interface{}{"type": "transaction", "transaction": tx})
}

// PublishSale implements service.SalePublisher.
func (h *ActivityHub) PublishSale(companyID uint, sale *models.Sale) {
	h.broadcastToCompany(companyID, map[string]interface{}{"type": "sale", "sale": sale})
}

func (h *ActivityHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
