package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenheaven/storefront-api/internal/core/domain"
	"github.com/greenheaven/storefront-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = "order_" + strconv.Itoa(r.nextID)
	r.orders[clone.ID] = &clone
	created := clone
	return &created, nil
}

func (r *stubOrderRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	// newest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id, userID string) error {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type stubCheckoutGuard struct {
	seen map[string]bool
}

func newStubCheckoutGuard() *stubCheckoutGuard {
	return &stubCheckoutGuard{seen: make(map[string]bool)}
}

func (g *stubCheckoutGuard) IsDuplicate(_ context.Context, userID, key string) (bool, error) {
	return g.seen[userID+":"+key], nil
}

func (g *stubCheckoutGuard) Mark(_ context.Context, userID, key string) error {
	g.seen[userID+":"+key] = true
	return nil
}

func newTestOrderService(products *stubProductRepo, guard CheckoutGuard) (*OrderService, *stubOrderRepo) {
	orders := newStubOrderRepo()
	return NewOrderService(orders, products, guard, zerolog.Nop()), orders
}

func seedProduct(repo *stubProductRepo, id, name string, price float64) {
	repo.products[id] = &domain.Product{ID: id, Name: name, Price: price, Image: "data:image/png;base64,eA=="}
}

func validPayment() domain.PaymentDetails {
	return domain.PaymentDetails{Method: "card", Status: "paid"}
}

func TestOrderService_CreateOrder_RecomputesTotal(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, repo := newTestOrderService(products, nil)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		Total:   100, // client figure is wrong on purpose
		Payment: validPayment(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Total != 160 {
		t.Fatalf("expected server-computed total 160, got %v", order.Total)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected status pending, got %s", order.Status)
	}
	if order.Items[0].UnitPrice != 80 || order.Items[0].Name != "Fern" {
		t.Fatalf("expected price/name snapshot, got %+v", order.Items[0])
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(repo.orders))
	}
}

func TestOrderService_CreateOrder_UnknownProduct(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, repo := newTestOrderService(products, nil)

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}, {ProductID: "ghost", Quantity: 1}},
		Total:   160,
		Payment: validPayment(),
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no order may be persisted on resolution failure, got %d", len(repo.orders))
	}
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, _ := newTestOrderService(products, nil)

	cases := []struct {
		name  string
		input ports.CreateOrderInput
	}{
		{"empty items", ports.CreateOrderInput{UserID: "u", Total: 10, Payment: validPayment()}},
		{"zero quantity", ports.CreateOrderInput{UserID: "u", Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 0}}, Total: 10, Payment: validPayment()}},
		{"zero total", ports.CreateOrderInput{UserID: "u", Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}}, Payment: validPayment()}},
		{"missing payment", ports.CreateOrderInput{UserID: "u", Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}}, Total: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(context.Background(), tc.input); !errors.Is(err, domain.ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestOrderService_CreateOrder_DuplicateCheckout(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	guard := newStubCheckoutGuard()
	svc, repo := newTestOrderService(products, guard)

	input := ports.CreateOrderInput{
		UserID:         "user_a",
		Items:          []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		Total:          80,
		Payment:        validPayment(),
		IdempotencyKey: "cart-123",
	}

	if _, err := svc.CreateOrder(context.Background(), input); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), input); !errors.Is(err, domain.ErrDuplicateCheckout) {
		t.Fatalf("expected ErrDuplicateCheckout, got %v", err)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("duplicate checkout must not persist a second order, got %d", len(repo.orders))
	}
}

func TestOrderService_ListOrders_OwnershipAndOrdering(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, repo := newTestOrderService(products, nil)

	first, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		Total:   160,
		Payment: validPayment(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Backdate the first order so the sort is observable.
	repo.orders[first.ID].CreatedAt = time.Now().Add(-time.Hour)

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		Total:   80,
		Payment: validPayment(),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ordersA, err := svc.ListOrders(context.Background(), "user_a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ordersA) != 2 {
		t.Fatalf("expected 2 orders for user_a, got %d", len(ordersA))
	}
	if !ordersA[0].CreatedAt.After(ordersA[1].CreatedAt) {
		t.Fatalf("orders not newest-first: %v then %v", ordersA[0].CreatedAt, ordersA[1].CreatedAt)
	}
	if ordersA[1].Items[0].Quantity != 2 {
		t.Fatalf("expected quantity snapshot 2, got %d", ordersA[1].Items[0].Quantity)
	}

	ordersB, err := svc.ListOrders(context.Background(), "user_b")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ordersB) != 0 {
		t.Fatalf("user_b must not see user_a's orders, got %d", len(ordersB))
	}
}

func TestOrderService_DeleteOrder_ConcealsForeignOrders(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, _ := newTestOrderService(products, nil)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		Total:   80,
		Payment: validPayment(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another user's delete must look like a missing order, not a forbidden one.
	if err := svc.DeleteOrder(context.Background(), order.ID, "user_b"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign delete, got %v", err)
	}

	if err := svc.DeleteOrder(context.Background(), order.ID, "user_a"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), order.ID, "user_a"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after delete, got %v", err)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Fern", 80)
	svc, _ := newTestOrderService(products, nil)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:  "user_a",
		Items:   []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
		Total:   80,
		Payment: validPayment(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusProcessing)
	if err != nil {
		t.Fatalf("valid transition failed: %v", err)
	}
	if updated.Status != domain.StatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}

	// Skipping a step is rejected.
	if _, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	// Unknown status is rejected.
	if _, err := svc.UpdateStatus(context.Background(), order.ID, "cancelled"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
	// Unknown order surfaces not-found.
	if _, err := svc.UpdateStatus(context.Background(), "ghost", domain.StatusProcessing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
