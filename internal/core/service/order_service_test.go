package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

type stubOrderRepo struct {
	orders  map[string]*domain.Order
	next    int64
	settles int

	// settleErr fails the next Settle call once.
	settleErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.next++
	clone := *o
	clone.ID = r.next
	r.orders[clone.Reference] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByReference(_ context.Context, ref string) (*domain.Order, error) {
	o, ok := r.orders[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Settle(_ context.Context, ref string, status domain.PaymentStatus, paymentID string) error {
	if err := r.settleErr; err != nil {
		r.settleErr = nil
		return err
	}
	o, ok := r.orders[ref]
	if !ok {
		return domain.ErrNotFound
	}
	if !o.PaymentStatus.CanSettleTo(status) {
		return domain.ErrOrderSettled
	}
	r.settles++
	o.PaymentStatus = status
	o.PaymentID = paymentID
	return nil
}

// memDedup claims each (reference, payment) pair once.
type memDedup struct {
	seen map[string]bool
	err  error
}

func (d *memDedup) Claim(_ context.Context, ref, paymentID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	key := ref + "|" + paymentID
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memDedup) Release(_ context.Context, ref, paymentID string) error {
	delete(d.seen, ref+"|"+paymentID)
	return nil
}

var testAddress = domain.ShippingAddress{
	FirstName: "Asha",
	Email:     "asha@example.com",
	City:      "Pune",
	Country:   "IN",
}

func newTestOrderService() (*OrderService, *stubOrderRepo, *memDedup) {
	repo := newStubOrderRepo()
	dedup := &memDedup{seen: map[string]bool{}}
	svc := NewOrderService(repo, dedup, nopLogger)
	svc.newID = func() string { return "fixed" }
	return svc, repo, dedup
}

func TestOrderService_Create(t *testing.T) {
	svc, _, _ := newTestOrderService()

	o, err := svc.Create(context.Background(), ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 499.99})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Reference != "receipt_fixed" {
		t.Fatalf("unexpected reference %q", o.Reference)
	}
	if o.AmountMinor != 49999 {
		t.Fatalf("expected 49999 minor units, got %d", o.AmountMinor)
	}
	if o.PaymentStatus != domain.PaymentPending || o.Currency != domain.DefaultCurrency {
		t.Fatalf("unexpected order defaults: %+v", o)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	svc, _, _ := newTestOrderService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 0}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Amount: 10}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateOrderInput{Address: testAddress, Amount: 10}); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without a user, got %v", err)
	}
}

func TestOrderService_Capture(t *testing.T) {
	svc, repo, _ := newTestOrderService()
	ctx := context.Background()

	o, err := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	captured, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay_1", Status: domain.PaymentPaid})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if captured.PaymentStatus != domain.PaymentPaid || captured.PaymentID != "pay_1" {
		t.Fatalf("unexpected captured order: %+v", captured)
	}

	// Replaying the same payment is answered from state without a second settle.
	replay, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay_1", Status: domain.PaymentPaid})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replay.PaymentStatus != domain.PaymentPaid || repo.settles != 1 {
		t.Fatalf("expected replay without settle, status %s settles %d", replay.PaymentStatus, repo.settles)
	}

	_, err = svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay_2", Status: domain.PaymentFailed})
	if !errors.Is(err, domain.ErrOrderSettled) {
		t.Fatalf("expected ErrOrderSettled, got %v", err)
	}
}

func TestOrderService_Capture_ForeignOrderIsNotFound(t *testing.T) {
	svc, _, _ := newTestOrderService()
	ctx := context.Background()

	o, _ := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 10})

	_, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 6, Reference: o.Reference, PaymentID: "pay", Status: domain.PaymentPaid})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderService_Capture_Validation(t *testing.T) {
	svc, _, _ := newTestOrderService()
	ctx := context.Background()

	if _, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: "r"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	_, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: "r", PaymentID: "p", Status: domain.PaymentPending})
	if !errors.Is(err, domain.ErrInvalidInput) || !strings.Contains(err.Error(), "pending") {
		t.Fatalf("expected ErrInvalidInput naming the status, got %v", err)
	}
}

func TestOrderService_Capture_DedupFailureFailsOpen(t *testing.T) {
	svc, repo, dedup := newTestOrderService()
	ctx := context.Background()

	o, _ := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 10})
	dedup.err = errors.New("redis down")

	if _, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay", Status: domain.PaymentPaid}); err != nil {
		t.Fatalf("Capture with failing dedup: %v", err)
	}
	if repo.settles != 1 {
		t.Fatalf("expected settle to proceed, got %d", repo.settles)
	}
}

func TestOrderService_Capture_RetryAfterStoreFailure(t *testing.T) {
	svc, repo, _ := newTestOrderService()
	ctx := context.Background()

	o, _ := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 10})
	repo.settleErr = errors.New("db connection reset")
	in := ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay", Status: domain.PaymentPaid}

	if _, err := svc.Capture(ctx, in); err == nil {
		t.Fatalf("expected the store failure to surface")
	}

	captured, err := svc.Capture(ctx, in)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if captured.PaymentStatus != domain.PaymentPaid || repo.settles != 1 {
		t.Fatalf("expected the retry to settle, status %s settles %d", captured.PaymentStatus, repo.settles)
	}
	if stored := repo.orders[o.Reference]; stored.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected stored order paid, got %s", stored.PaymentStatus)
	}
}

func TestOrderService_Capture_RejectedPaymentStaysRejected(t *testing.T) {
	svc, _, _ := newTestOrderService()
	ctx := context.Background()

	o, _ := svc.Create(ctx, ports.CreateOrderInput{UserID: 5, Address: testAddress, Amount: 10})
	if _, err := svc.Capture(ctx, ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay_1", Status: domain.PaymentPaid}); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	other := ports.CaptureOrderInput{UserID: 5, Reference: o.Reference, PaymentID: "pay_2", Status: domain.PaymentFailed}
	for i := 0; i < 2; i++ {
		if _, err := svc.Capture(ctx, other); !errors.Is(err, domain.ErrOrderSettled) {
			t.Fatalf("attempt %d: expected ErrOrderSettled, got %v", i, err)
		}
	}
}
