package models

import "time"

// ServiceType is the kind of table-side assistance being requested.
type ServiceType string

const (
	ServiceWater  ServiceType = "WATER"
	ServiceWaiter ServiceType = "WAITER"
	ServiceBill   ServiceType = "BILL"
)

// ValidServiceType reports whether t is one of the three request kinds.
func ValidServiceType(t ServiceType) bool {
	return t == ServiceWater || t == ServiceWaiter || t == ServiceBill
}

// ServiceRequestStatus is the two-state lifecycle of a service request.
type ServiceRequestStatus string

const (
	ServiceRequestPending  ServiceRequestStatus = "PENDING"
	ServiceRequestResolved ServiceRequestStatus = "RESOLVED"
)

// ServiceRequest is an ad-hoc table request (water, waiter, bill). Requests
// are never deduplicated: a table may stack several identical ones, which
// staff read as urgency.
type ServiceRequest struct {
	ID        string               `json:"id"`
	TableID   int                  `json:"tableId"`
	Type      ServiceType          `json:"type"`
	Status    ServiceRequestStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}
