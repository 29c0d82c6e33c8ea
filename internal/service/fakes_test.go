package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
)

// cloneJSON deep-copies a value the same way the real repositories do when
// they round-trip documents through JSON.
func cloneJSON[T any](src T) T {
	data, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}

type fakeCartRepo struct {
	mu        sync.Mutex
	carts     map[string]*domain.Cart
	failSaves int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *fakeCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, nil
	}
	c := cloneJSON(*cart)
	return &c, nil
}

func (r *fakeCartRepo) SaveIfVersion(_ context.Context, cart *domain.Cart, expected int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSaves > 0 {
		r.failSaves--
		return false, nil
	}
	current, ok := r.carts[cart.SessionID]
	if !ok {
		if expected != 0 {
			return false, nil
		}
	} else if current.Version != expected {
		return false, nil
	}
	cart.Version = expected + 1
	c := cloneJSON(*cart)
	r.carts[cart.SessionID] = &c
	return true, nil
}

func (r *fakeCartRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	book      *domain.OrderBook
	failSaves int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (r *fakeOrderRepo) Get(_ context.Context) (*domain.OrderBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.book == nil {
		return domain.NewOrderBook(), nil
	}
	b := cloneJSON(*r.book)
	return &b, nil
}

func (r *fakeOrderRepo) SaveIfVersion(_ context.Context, book *domain.OrderBook, expected int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSaves > 0 {
		r.failSaves--
		return false, nil
	}
	if r.book == nil {
		if expected != 0 {
			return false, nil
		}
	} else if r.book.Version != expected {
		return false, nil
	}
	book.Version = expected + 1
	b := cloneJSON(*book)
	r.book = &b
	return true, nil
}

type fakeProductRepo struct {
	mu      sync.Mutex
	catalog *domain.Catalog
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{}
}

func (r *fakeProductRepo) Get(_ context.Context) (*domain.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog == nil {
		return nil, nil
	}
	c := cloneJSON(*r.catalog)
	return &c, nil
}

func (r *fakeProductRepo) SaveIfVersion(_ context.Context, catalog *domain.Catalog, expected int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog == nil {
		if expected != 0 {
			return false, nil
		}
	} else if r.catalog.Version != expected {
		return false, nil
	}
	catalog.Version = expected + 1
	c := cloneJSON(*catalog)
	r.catalog = &c
	return true, nil
}

type fakeProductSource struct {
	products map[string]domain.Product
}

func (s *fakeProductSource) ProductByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

type publishedEvent struct {
	kind string
	id   string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) record(kind, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{kind: kind, id: id})
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.kind
	}
	return out
}

func (p *recordingPublisher) CartUpdated(_ context.Context, cart *domain.Cart) error {
	return p.record("cart.updated", cart.SessionID)
}

func (p *recordingPublisher) CartCleared(_ context.Context, sessionID string) error {
	return p.record("cart.cleared", sessionID)
}

func (p *recordingPublisher) OrderCreated(_ context.Context, order domain.Order) error {
	return p.record("order.created", order.ID)
}

func (p *recordingPublisher) OrderStatusChanged(_ context.Context, orderID, _, _ string) error {
	return p.record("order.status_changed", orderID)
}

func (p *recordingPublisher) CatalogChanged(_ context.Context, productID, _ string) error {
	return p.record("catalog.changed", productID)
}

func (p *recordingPublisher) Close() error { return nil }
