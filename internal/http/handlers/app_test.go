package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ledger/internal/domain"
	"ledger/internal/ledger"
)

type stubTransactionRepo struct {
	created    []*domain.Transaction
	findResult []domain.Transaction
	findErr    error
	attached   map[int64]int64
}

func (s *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	tx.ID = int64(len(s.created) + 1)
	tx.CreatedAt = time.Date(2020, 10, 8, 15, 0, 0, 0, time.UTC)
	s.created = append(s.created, tx)
	return nil
}

func (s *stubTransactionRepo) FindByCollectives(_ context.Context, _ []int64, _, _ time.Time, _ domain.TransactionQuery) ([]domain.Transaction, error) {
	return s.findResult, s.findErr
}

func (s *stubTransactionRepo) AttachPaymentMethod(_ context.Context, transactionID, paymentMethodID int64) error {
	if s.attached == nil {
		s.attached = make(map[int64]int64)
	}
	s.attached[transactionID] = paymentMethodID
	return nil
}

type stubActivityRepo struct {
	created []*domain.Activity
}

func (s *stubActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	s.created = append(s.created, activity)
	return nil
}

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type stubCollectiveRepo struct {
	collectives map[int64]*domain.Collective
	hosts       map[int64]*domain.Host
}

func (s *stubCollectiveRepo) GetByID(_ context.Context, id int64) (*domain.Collective, error) {
	if c, ok := s.collectives[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubCollectiveRepo) GetHostByID(_ context.Context, id int64) (*domain.Host, error) {
	if h, ok := s.hosts[id]; ok {
		return h, nil
	}
	return nil, domain.ErrNotFound
}

type stubExpenseRepo struct {
	expenses   map[int64]*domain.Expense
	markedPaid []int64
}

func (s *stubExpenseRepo) GetByID(_ context.Context, id int64) (*domain.Expense, error) {
	if e, ok := s.expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubExpenseRepo) MarkPaid(_ context.Context, id int64) error {
	s.markedPaid = append(s.markedPaid, id)
	return nil
}

type stubPaymentMethodRepo struct {
	methods map[int64]*domain.PaymentMethod
}

func (s *stubPaymentMethodRepo) GetByID(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	if m, ok := s.methods[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

type stubRates struct {
	rate float64
}

func (s *stubRates) GetFxRate(_ context.Context, _, _ string, _ time.Time) (float64, error) {
	return s.rate, nil
}

type appFixture struct {
	app          *App
	transactions *stubTransactionRepo
	activities   *stubActivityRepo
	expenses     *stubExpenseRepo
	collectives  *stubCollectiveRepo
}

func newAppFixture() *appFixture {
	transactions := &stubTransactionRepo{}
	activities := &stubActivityRepo{}
	users := &stubUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Email: "ops@example.com", FirstName: "Ada", LastName: "Hopper"},
	}}
	collectives := &stubCollectiveRepo{
		collectives: map[int64]*domain.Collective{
			5: {ID: 5, Slug: "open-kitchen", Name: "Open Kitchen", Currency: "EUR"},
		},
		hosts: map[int64]*domain.Host{
			9: {ID: 9, Slug: "host-org", Name: "Host Org", Currency: "USD"},
		},
	}
	expenses := &stubExpenseRepo{expenses: map[int64]*domain.Expense{
		12: {
			ID:           12,
			CollectiveID: 5,
			UserID:       7,
			Amount:       5000,
			Currency:     "EUR",
			Description:  "venue rental",
			Status:       domain.ExpenseStatusApproved,
			IncurredAt:   time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	paymentMethods := &stubPaymentMethodRepo{methods: map[int64]*domain.PaymentMethod{
		3: {ID: 3, UserID: 7, Service: domain.PaymentMethodServicePayPal, Token: "PA-123"},
	}}

	svc := ledger.NewService(transactions, activities, users, collectives, &stubRates{rate: 1.25}, zerolog.Nop())
	return &appFixture{
		app: &App{
			Ledger:         svc,
			Expenses:       expenses,
			Collectives:    collectives,
			PaymentMethods: paymentMethods,
			Logger:         zerolog.Nop(),
		},
		transactions: transactions,
		activities:   activities,
		expenses:     expenses,
		collectives:  collectives,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
