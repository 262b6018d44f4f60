// Package store holds the shared in-memory state behind the three portals:
// the menu catalog, every placed order, and every service request. One Store
// is created at startup and handed to each portal's handlers; nothing is
// persisted and everything resets on restart.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tableside/internal/models"
)

// Listener is notified after each successful mutation, outside the store
// lock. The api package uses it to push live updates to kitchen clients.
type Listener func(event string, payload interface{})

// Store is the process-wide record of menu, orders, and service requests.
// All portals read and mutate it through the methods below; the mutex makes
// each mutation atomic with respect to concurrent handler goroutines.
type Store struct {
	mu       sync.RWMutex
	menu     []models.MenuItem
	orders   []models.Order
	requests []models.ServiceRequest

	listeners []Listener
	now       func() time.Time
	newID     func() string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Subscribe registers a listener for mutation events.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *Store) notify(event string, payload interface{}) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(event, payload)
	}
}

// PlaceOrder commits a cart snapshot as a new PENDING order for the table
// and returns the order's id. The total is fixed at commit time as the sum
// of unit price times quantity; later menu edits never change it.
func (s *Store) PlaceOrder(tableID int, cart []models.CartItem, note string) (string, error) {
	if tableID <= 0 {
		return "", &models.ValidationError{Field: "tableId", Reason: "must be positive"}
	}
	if len(cart) == 0 {
		return "", ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart))
	var total float64
	for _, line := range cart {
		if line.Quantity <= 0 {
			return "", &models.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		items = append(items, models.OrderItem{
			MenuItemID:    line.Item.ID,
			Name:          line.Item.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.Item.Price,
			Modifications: copyModifications(line.Modifications),
		})
		total += line.Item.Price * float64(line.Quantity)
	}

	order := models.Order{
		ID:           s.newID(),
		TableID:      tableID,
		Items:        items,
		TotalAmount:  total,
		Status:       models.OrderStatusPending,
		CreatedAt:    s.now(),
		CustomerNote: note,
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	s.notify("order_placed", order)
	return order.ID, nil
}

// UpdateOrderStatus moves an order to a new status. Illegal successions per
// the lifecycle (PENDING→COOKING→SERVED→PAID, cancel from any non-terminal
// state) fail with an InvalidTransitionError; repeating the current status is
// a convergent no-op.
func (s *Store) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return &models.ValidationError{Field: "status", Reason: "unknown order status"}
	}

	s.mu.Lock()
	idx := s.orderIndex(orderID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	from := s.orders[idx].Status
	if from == status {
		s.mu.Unlock()
		return nil
	}
	if !models.CanTransition(from, status) {
		s.mu.Unlock()
		return &InvalidTransitionError{From: from, To: status}
	}
	s.orders[idx].Status = status
	order := s.orders[idx]
	s.mu.Unlock()

	s.notify("order_status", order)
	return nil
}

// ProcessPayment marks an order PAID. Only meaningful once it is SERVED.
func (s *Store) ProcessPayment(orderID string) error {
	return s.UpdateOrderStatus(orderID, models.OrderStatusPaid)
}

// ProcessRefund cancels an order from any non-terminal state. No inventory
// or payment gateway is modeled; the order simply stops counting toward
// revenue. Orders already PAID stay PAID.
func (s *Store) ProcessRefund(orderID string) error {
	return s.UpdateOrderStatus(orderID, models.OrderStatusCancelled)
}

// Order returns a copy of the order with the given id.
func (s *Store) Order(orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.orderIndex(orderID)
	if idx < 0 {
		return models.Order{}, ErrNotFound
	}
	return copyOrder(s.orders[idx]), nil
}

// Orders returns a copy of every order, oldest first.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, copyOrder(o))
	}
	return out
}

// OrdersByStatus returns every order currently in one of the given statuses.
func (s *Store) OrdersByStatus(statuses ...models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		for _, want := range statuses {
			if o.Status == want {
				out = append(out, copyOrder(o))
				break
			}
		}
	}
	return out
}

// OrdersByTable returns every order placed at the given table.
func (s *Store) OrdersByTable(tableID int) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.TableID == tableID {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

// RequestService appends a new PENDING service request for the table and
// returns its id. Duplicate requests for the same table and type are kept.
func (s *Store) RequestService(tableID int, kind models.ServiceType) (string, error) {
	if tableID <= 0 {
		return "", &models.ValidationError{Field: "tableId", Reason: "must be positive"}
	}
	if !models.ValidServiceType(kind) {
		return "", &models.ValidationError{Field: "type", Reason: "unknown service type"}
	}

	req := models.ServiceRequest{
		ID:        s.newID(),
		TableID:   tableID,
		Type:      kind,
		Status:    models.ServiceRequestPending,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	s.notify("service_requested", req)
	return req.ID, nil
}

// ResolveServiceRequest marks a request RESOLVED. Resolving twice is a
// no-op; a RESOLVED request never returns to PENDING.
func (s *Store) ResolveServiceRequest(requestID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.requests {
		if s.requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	if s.requests[idx].Status == models.ServiceRequestResolved {
		s.mu.Unlock()
		return nil
	}
	s.requests[idx].Status = models.ServiceRequestResolved
	req := s.requests[idx]
	s.mu.Unlock()

	s.notify("service_resolved", req)
	return nil
}

// ServiceRequests returns a copy of every service request, oldest first.
func (s *Store) ServiceRequests() []models.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ServiceRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// PendingServiceRequests returns the unresolved requests, oldest first.
func (s *Store) PendingServiceRequests() []models.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ServiceRequest
	for _, r := range s.requests {
		if r.Status == models.ServiceRequestPending {
			out = append(out, r)
		}
	}
	return out
}

// AddMenuItem validates the item, assigns it a fresh id, and appends it to
// the catalog. Modification groups without ids get fresh ones too.
func (s *Store) AddMenuItem(item models.MenuItem) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}
	item.ID = s.newID()
	s.assignGroupIDs(&item)

	s.mu.Lock()
	s.menu = append(s.menu, item)
	s.mu.Unlock()

	s.notify("menu_changed", item)
	return item.ID, nil
}

// UpdateMenuItem replaces the catalog entry with the same id. A missing id
// is reported as ErrNotFound rather than silently ignored. Modification
// groups added by the edit get fresh ids, as on create.
func (s *Store) UpdateMenuItem(item models.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.assignGroupIDs(&item)

	s.mu.Lock()
	for i := range s.menu {
		if s.menu[i].ID == item.ID {
			s.menu[i] = item
			s.mu.Unlock()
			s.notify("menu_changed", item)
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}

// DeleteMenuItem removes an item (and its modification groups) from the
// catalog. Historical orders keep their snapshots. Deleting an absent id is
// a no-op.
func (s *Store) DeleteMenuItem(id string) {
	s.mu.Lock()
	for i := range s.menu {
		if s.menu[i].ID == id {
			s.menu = append(s.menu[:i], s.menu[i+1:]...)
			s.mu.Unlock()
			s.notify("menu_changed", nil)
			return
		}
	}
	s.mu.Unlock()
}

// Menu returns a copy of the catalog.
func (s *Store) Menu() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		out = append(out, copyMenuItem(m))
	}
	return out
}

// MenuItem returns a copy of the catalog entry with the given id.
func (s *Store) MenuItem(id string) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.menu {
		if m.ID == id {
			return copyMenuItem(m), nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

// assignGroupIDs gives fresh ids to modification groups that lack one.
func (s *Store) assignGroupIDs(item *models.MenuItem) {
	for i := range item.ModGroups {
		if item.ModGroups[i].ID == "" {
			item.ModGroups[i].ID = s.newID()
		}
	}
}

// orderIndex must be called with the lock held.
func (s *Store) orderIndex(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		items[i].Modifications = copyModifications(items[i].Modifications)
	}
	o.Items = items
	return o
}

func copyMenuItem(m models.MenuItem) models.MenuItem {
	m.Ingredients = append([]string(nil), m.Ingredients...)
	m.Allergens = append([]string(nil), m.Allergens...)
	groups := make([]models.ModificationGroup, len(m.ModGroups))
	copy(groups, m.ModGroups)
	for i := range groups {
		groups[i].Options = append([]string(nil), groups[i].Options...)
	}
	m.ModGroups = groups
	return m
}

func copyModifications(mods map[string][]string) map[string][]string {
	if mods == nil {
		return nil
	}
	out := make(map[string][]string, len(mods))
	for name, picks := range mods {
		out[name] = append([]string(nil), picks...)
	}
	return out
}
