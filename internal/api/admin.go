package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableside/internal/models"
)

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}

func (s *Server) handleListOrders(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		c.JSON(http.StatusOK, s.store.OrdersByStatus(models.OrderStatus(status)))
		return
	}
	c.JSON(http.StatusOK, s.store.Orders())
}

func (s *Server) handleProcessPayment(c *gin.Context) {
	orderID := c.Param("id")
	if err := s.store.ProcessPayment(orderID); err != nil {
		writeStoreError(c, err)
		return
	}

	order, err := s.store.Order(orderID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	s.monitor.PaymentProcessed(order.TotalAmount)

	c.JSON(http.StatusOK, order)
}

func (s *Server) handleProcessRefund(c *gin.Context) {
	orderID := c.Param("id")
	if err := s.store.ProcessRefund(orderID); err != nil {
		writeStoreError(c, err)
		return
	}
	s.monitor.RefundProcessed()

	order, err := s.store.Order(orderID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) handleListServiceRequests(c *gin.Context) {
	if c.Query("pending") == "true" {
		c.JSON(http.StatusOK, s.store.PendingServiceRequests())
		return
	}
	c.JSON(http.StatusOK, s.store.ServiceRequests())
}

func (s *Server) handleResolveServiceRequest(c *gin.Context) {
	if err := s.store.ResolveServiceRequest(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

func (s *Server) handleAddMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.store.AddMenuItem(item)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleUpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = c.Param("id")

	if err := s.store.UpdateMenuItem(item); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteMenuItem(c *gin.Context) {
	s.store.DeleteMenuItem(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// handleStatusMetrics serves the ad-hoc status snapshot (uptime and any
// recorded gauges) as JSON; Prometheus exposition lives on the metrics port.
func (s *Server) handleStatusMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
