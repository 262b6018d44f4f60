package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tableside/internal/models"
	"tableside/internal/recommend"
)

func tableParam(c *gin.Context) (int, bool) {
	tableID, err := strconv.Atoi(c.Param("table"))
	if err != nil || tableID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table must be a positive integer"})
		return 0, false
	}
	return tableID, true
}

func (s *Server) handleGetMenu(c *gin.Context) {
	menu := s.store.Menu()
	if category := c.Query("category"); category != "" {
		filtered := menu[:0]
		for _, item := range menu {
			if item.Category == models.MenuCategory(category) {
				filtered = append(filtered, item)
			}
		}
		menu = filtered
	}
	c.JSON(http.StatusOK, menu)
}

func (s *Server) handleGetMenuItem(c *gin.Context) {
	item, err := s.store.MenuItem(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddToCartRequest selects a menu item for the table's cart.
type AddToCartRequest struct {
	MenuItemID    string              `json:"menuItemId" binding:"required"`
	Quantity      int                 `json:"quantity"`
	Modifications map[string][]string `json:"modifications"`
}

func (s *Server) handleAddToCart(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := s.store.MenuItem(req.MenuItemID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	sess := s.sessionFor(tableID)
	sess.mu.Lock()
	err = sess.cart.Add(item, req.Quantity, req.Modifications)
	sess.mu.Unlock()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	items, subtotal := sess.snapshot()
	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

// AdjustCartRequest bumps a cart line's quantity up or down.
type AdjustCartRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (s *Server) handleAdjustCart(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	var req AdjustCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := s.sessionFor(tableID)
	sess.mu.Lock()
	adjustErr := sess.cart.Adjust(index, req.Delta)
	sess.mu.Unlock()
	if adjustErr != nil {
		writeStoreError(c, adjustErr)
		return
	}
	items, subtotal := sess.snapshot()
	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

func (s *Server) handleGetCart(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	items, subtotal := s.sessionFor(tableID).snapshot()
	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

// CheckoutRequest commits the table's cart as an order.
type CheckoutRequest struct {
	Note string `json:"note"`
}

func (s *Server) handleCheckout(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// Commit and clear under the session lock so a line added by a
	// concurrent request cannot slip in between and be dropped.
	sess := s.sessionFor(tableID)
	sess.mu.Lock()
	orderID, err := s.store.PlaceOrder(tableID, sess.cart.Items, req.Note)
	if err == nil {
		sess.cart.Clear()
	}
	sess.mu.Unlock()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	s.monitor.OrderPlaced()

	c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
}

func (s *Server) handleTableOrders(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.OrdersByTable(tableID))
}

// ServiceRequestRequest raises a table-side request for staff.
type ServiceRequestRequest struct {
	Type models.ServiceType `json:"type" binding:"required"`
}

func (s *Server) handleRequestService(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}

	var req ServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := s.store.RequestService(tableID, req.Type)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	s.monitor.ServiceRequested(string(req.Type))

	c.JSON(http.StatusCreated, gin.H{"requestId": requestID})
}

// ChatRequest asks the waiter bot for a recommendation.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) handleChat(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat := s.chatFor(tableID)
	seq := chat.Begin(req.Message)

	var priorOrders []string
	for _, order := range s.store.OrdersByTable(tableID) {
		for _, line := range order.Items {
			priorOrders = append(priorOrders, line.Name)
		}
	}

	reply := recommend.Fallback
	outcome := "fallback"
	if s.recommender != nil {
		reply = s.recommender.Recommend(c.Request.Context(), req.Message, s.store.Menu(), priorOrders)
		if reply != recommend.Fallback {
			outcome = "ok"
		}
	}

	if !chat.Complete(seq, reply) {
		// A newer question was answered while this one was in flight.
		outcome = "stale"
	}
	s.monitor.RecommendationServed(outcome)

	c.JSON(http.StatusOK, gin.H{"reply": reply, "stale": outcome == "stale"})
}

func (s *Server) handleChatHistory(c *gin.Context) {
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.chatFor(tableID).Messages())
}
