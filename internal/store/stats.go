package store

import "tableside/internal/models"

// Stats is the admin dashboard snapshot. Every field is recomputed from the
// order list on each call; nothing is cached.
type Stats struct {
	TotalRevenue   float64         `json:"totalRevenue"`
	PendingRevenue float64         `json:"pendingRevenue"`
	ActiveTables   int             `json:"activeTables"`
	RevenueByTable map[int]float64 `json:"revenueByTable"`
	OpenOrders     int             `json:"openOrders"`
	OpenRequests   int             `json:"openRequests"`
}

// Stats computes the dashboard aggregates. PAID orders count toward total
// revenue; PENDING, COOKING, and SERVED orders toward pending revenue and
// active tables; CANCELLED orders toward neither.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{RevenueByTable: make(map[int]float64)}
	activeTables := make(map[int]struct{})

	for _, o := range s.orders {
		switch {
		case o.Status == models.OrderStatusPaid:
			stats.TotalRevenue += o.TotalAmount
			stats.RevenueByTable[o.TableID] += o.TotalAmount
		case o.Active():
			stats.PendingRevenue += o.TotalAmount
			activeTables[o.TableID] = struct{}{}
			stats.OpenOrders++
		}
	}
	stats.ActiveTables = len(activeTables)

	for _, r := range s.requests {
		if r.Status == models.ServiceRequestPending {
			stats.OpenRequests++
		}
	}
	return stats
}
