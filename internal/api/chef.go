package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableside/internal/models"
)

// handleKitchenQueue returns the orders the kitchen still has work on,
// oldest first.
func (s *Server) handleKitchenQueue(c *gin.Context) {
	queue := s.store.OrdersByStatus(models.OrderStatusPending, models.OrderStatusCooking)
	c.JSON(http.StatusOK, queue)
}

// UpdateStatusRequest advances an order through its lifecycle.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	if err := s.store.UpdateOrderStatus(orderID, req.Status); err != nil {
		writeStoreError(c, err)
		return
	}
	s.monitor.OrderTransition(string(req.Status))

	order, err := s.store.Order(orderID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
