// Package api exposes the three portals, customer, chef, and admin, as HTTP
// route groups over one shared store. The store is injected; handlers hold
// no state of their own beyond per-table session carts and chat logs.
package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"tableside/internal/models"
	"tableside/internal/monitoring"
	"tableside/internal/recommend"
	"tableside/internal/store"
)

// Server wires the portal routes to the shared store.
type Server struct {
	router      *gin.Engine
	store       *store.Store
	monitor     *monitoring.Monitor
	recommender *recommend.Recommender
	hub         *Hub

	sessionMu sync.Mutex
	sessions  map[int]*session
	chats     map[int]*recommend.ChatLog
}

// session holds one table's in-progress cart behind its own lock. Gin serves
// overlapping requests from the same table concurrently, so every cart read
// and mutation goes through the session mutex; checkout snapshots and clears
// under the same hold.
type session struct {
	mu   sync.Mutex
	cart models.Cart
}

// snapshot returns a copy of the cart lines and the subtotal.
func (s *session) snapshot() ([]models.CartItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items, s.cart.Subtotal()
}

// NewServer creates the portal server over the given store. The recommender
// may be nil, in which case the chat endpoint always answers with the
// fallback message.
func NewServer(st *store.Store, rec *recommend.Recommender, mon *monitoring.Monitor) *Server {
	s := &Server{
		router:      gin.Default(),
		store:       st,
		monitor:     mon,
		recommender: rec,
		hub:         NewHub(),
		sessions:    make(map[int]*session),
		chats:       make(map[int]*recommend.ChatLog),
	}

	st.Subscribe(s.hub.Broadcast)
	s.setupRoutes()
	return s
}

// setupRoutes configures all portal endpoints.
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/ws/kitchen", s.handleKitchenSocket)

	v1 := s.router.Group("/api/v1")

	// Customer portal
	v1.GET("/menu", s.handleGetMenu)
	v1.GET("/menu/:id", s.handleGetMenuItem)
	table := v1.Group("/tables/:table")
	{
		table.GET("/cart", s.handleGetCart)
		table.POST("/cart/items", s.handleAddToCart)
		table.POST("/cart/items/:index/adjust", s.handleAdjustCart)
		table.POST("/checkout", s.handleCheckout)
		table.GET("/orders", s.handleTableOrders)
		table.POST("/service", s.handleRequestService)
		table.POST("/chat", s.handleChat)
		table.GET("/chat", s.handleChatHistory)
	}

	// Chef portal
	v1.GET("/kitchen/queue", s.handleKitchenQueue)
	v1.POST("/orders/:id/status", s.handleUpdateOrderStatus)

	// Admin portal
	admin := v1.Group("/admin")
	{
		admin.GET("/stats", s.handleStats)
		admin.GET("/orders", s.handleListOrders)
		admin.POST("/orders/:id/pay", s.handleProcessPayment)
		admin.POST("/orders/:id/refund", s.handleProcessRefund)
		admin.GET("/service-requests", s.handleListServiceRequests)
		admin.POST("/service-requests/:id/resolve", s.handleResolveServiceRequest)
		admin.POST("/menu", s.handleAddMenuItem)
		admin.PUT("/menu/:id", s.handleUpdateMenuItem)
		admin.DELETE("/menu/:id", s.handleDeleteMenuItem)
		admin.GET("/metrics", s.handleStatusMetrics)
	}
}

// Router returns the Gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// sessionFor returns the session for a table, creating it on first use.
func (s *Server) sessionFor(tableID int) *session {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	sess, ok := s.sessions[tableID]
	if !ok {
		sess = &session{}
		s.sessions[tableID] = sess
	}
	return sess
}

// chatFor returns the conversation log for a table, creating it on first use.
func (s *Server) chatFor(tableID int) *recommend.ChatLog {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	chat, ok := s.chats[tableID]
	if !ok {
		chat = recommend.NewChatLog()
		s.chats[tableID] = chat
	}
	return chat
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case store.IsInvalidTransition(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
