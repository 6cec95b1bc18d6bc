package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger/internal/domain"
	"ledger/internal/paypal"
)

func testLogger() zerolog.Logger { return zerolog.Nop() }

type fakeTransactionRepo struct {
	created   []*domain.Transaction
	createErr error

	attached  [][2]int64
	attachErr error

	findResult []domain.Transaction
	findErr    error
	gotIDs     []int64
	gotStart   time.Time
	gotEnd     time.Time
	gotQuery   domain.TransactionQuery

	nextID int64
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	tx.ID = f.nextID
	tx.CreatedAt = time.Now()
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionRepo) FindByCollectives(_ context.Context, collectiveIDs []int64, startDate, endDate time.Time, query domain.TransactionQuery) ([]domain.Transaction, error) {
	f.gotIDs = collectiveIDs
	f.gotStart = startDate
	f.gotEnd = endDate
	f.gotQuery = query
	return f.findResult, f.findErr
}

func (f *fakeTransactionRepo) AttachPaymentMethod(_ context.Context, transactionID, paymentMethodID int64) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = append(f.attached, [2]int64{transactionID, paymentMethodID})
	return nil
}

type fakeActivityRepo struct {
	created   []*domain.Activity
	createErr error
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	if f.createErr != nil {
		return f.createErr
	}
	activity.ID = int64(len(f.created) + 1)
	f.created = append(f.created, activity)
	return nil
}

type fakeUserRepo struct {
	user *domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.user, nil
}

type fakeCollectiveRepo struct {
	collective *domain.Collective
	host       *domain.Host
}

func (f *fakeCollectiveRepo) GetByID(_ context.Context, id int64) (*domain.Collective, error) {
	if f.collective == nil || f.collective.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.collective, nil
}

func (f *fakeCollectiveRepo) GetHostByID(_ context.Context, id int64) (*domain.Host, error) {
	if f.host == nil || f.host.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.host, nil
}

type fakeRates struct {
	rate    float64
	err     error
	gotFrom string
	gotTo   string
	gotAsOf time.Time
	calls   int
}

func (f *fakeRates) GetFxRate(_ context.Context, from, to string, asOf time.Time) (float64, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotAsOf = asOf
	return f.rate, f.err
}

type serviceFixture struct {
	service      *Service
	transactions *fakeTransactionRepo
	activities   *fakeActivityRepo
	rates        *fakeRates
}

func newServiceFixture(rate float64) serviceFixture {
	transactions := &fakeTransactionRepo{}
	activities := &fakeActivityRepo{}
	users := &fakeUserRepo{user: &domain.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}}
	collectives := &fakeCollectiveRepo{
		collective: &domain.Collective{ID: 5, Slug: "openlib", Name: "Open Library"},
		host:       &domain.Host{ID: 9, Slug: "fiscal-host", Name: "Fiscal Host", Currency: "USD"},
	}
	rates := &fakeRates{rate: rate}
	return serviceFixture{
		service:      NewService(transactions, activities, users, collectives, rates, testLogger()),
		transactions: transactions,
		activities:   activities,
		rates:        rates,
	}
}

func testExpense() *domain.Expense {
	return &domain.Expense{
		ID:           12,
		CollectiveID: 5,
		UserID:       7,
		Amount:       5000,
		Currency:     "EUR",
		Description:  "community meetup catering",
		IncurredAt:   time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2020, 10, 3, 0, 0, 0, 0, time.UTC),
	}
}

func testHost() *domain.Host {
	return &domain.Host{ID: 9, Slug: "fiscal-host", Name: "Fiscal Host", Currency: "USD"}
}

func TestCreateFromPaidExpenseManual(t *testing.T) {
	f := newServiceFixture(1.2)

	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), nil, nil, 7)
	if err != nil {
		t.Fatalf("CreateFromPaidExpense returned error: %v", err)
	}

	if tx.Amount != -5000 {
		t.Fatalf("Amount = %d, want -5000", tx.Amount)
	}
	if tx.NetAmountInCollectiveCurrency != -5000 {
		t.Fatalf("NetAmountInCollectiveCurrency = %d, want -5000", tx.NetAmountInCollectiveCurrency)
	}
	if tx.Currency != "EUR" || tx.TxnCurrency != "USD" {
		t.Fatalf("currency pair = %s/%s, want EUR/USD", tx.Currency, tx.TxnCurrency)
	}
	if tx.TxnCurrencyFxRate == nil || *tx.TxnCurrencyFxRate != 1.2 {
		t.Fatalf("TxnCurrencyFxRate = %v, want 1.2", tx.TxnCurrencyFxRate)
	}
	if tx.AmountInTxnCurrency == nil || *tx.AmountInTxnCurrency != -6000 {
		t.Fatalf("AmountInTxnCurrency = %v, want -6000", tx.AmountInTxnCurrency)
	}
	if !tx.PaymentProcessorFeeInTxnCurrency.IsZero() {
		t.Fatalf("PaymentProcessorFeeInTxnCurrency = %s, want 0", tx.PaymentProcessorFeeInTxnCurrency)
	}

	if f.rates.gotFrom != "EUR" || f.rates.gotTo != "USD" {
		t.Fatalf("fx lookup pair = %s/%s, want EUR/USD", f.rates.gotFrom, f.rates.gotTo)
	}
	if !f.rates.gotAsOf.Equal(time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("fx lookup asOf = %v, want incurred date", f.rates.gotAsOf)
	}

	if len(f.activities.created) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.activities.created))
	}
	activity := f.activities.created[0]
	if activity.Type != domain.ActivityTypeExpensePaid {
		t.Fatalf("activity type = %q", activity.Type)
	}
	if activity.TransactionID != tx.ID || activity.UserID != 7 || activity.CollectiveID != 5 {
		t.Fatalf("activity references = %+v", activity)
	}

	var data struct {
		Transaction domain.TransactionInfo   `json:"transaction"`
		User        domain.UserMinimal       `json:"user"`
		Collective  domain.CollectiveMinimal `json:"collective"`
	}
	if err := json.Unmarshal(activity.Data, &data); err != nil {
		t.Fatalf("decode activity data: %v", err)
	}
	if data.User.Name != "Ada Lovelace" {
		t.Fatalf("activity user = %+v", data.User)
	}
	if data.Collective.Slug != "openlib" {
		t.Fatalf("activity collective = %+v", data.Collective)
	}
	if data.Transaction.Amount != -5000 {
		t.Fatalf("activity transaction amount = %d", data.Transaction.Amount)
	}
}

func paypalResponses(status string, fee, exchangeRate float64) *paypal.PaymentResponses {
	plan := &paypal.DefaultFundingPlan{SenderFees: &paypal.SenderFees{Amount: fee}}
	if exchangeRate != 0 {
		plan.CurrencyConversion = &paypal.CurrencyConversion{ExchangeRate: exchangeRate}
	}
	return &paypal.PaymentResponses{
		CreatePaymentResponse: &paypal.CreatePaymentResponse{
			PaymentApprovalURL: "https://www.paypal.com/approve?payKey=AP-123",
			DefaultFundingPlan: plan,
		},
		ExecutePaymentResponse: &paypal.ExecutePaymentResponse{PaymentExecStatus: status},
	}
}

func TestCreateFromPaidExpensePayPalCompleted(t *testing.T) {
	f := newServiceFixture(0)

	responses := paypalResponses(paypal.StatusCompleted, 1.5, 0.8)
	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), responses, nil, 7)
	if err != nil {
		t.Fatalf("CreateFromPaidExpense returned error: %v", err)
	}

	if tx.NetAmountInCollectiveCurrency != -5150 {
		t.Fatalf("NetAmountInCollectiveCurrency = %d, want -5150", tx.NetAmountInCollectiveCurrency)
	}
	if !tx.PaymentProcessorFeeInTxnCurrency.Equal(decimal.RequireFromString("187.5")) {
		t.Fatalf("PaymentProcessorFeeInTxnCurrency = %s, want 187.5", tx.PaymentProcessorFeeInTxnCurrency)
	}
	if tx.TxnCurrencyFxRate == nil || *tx.TxnCurrencyFxRate != 0.8 {
		t.Fatalf("TxnCurrencyFxRate = %v, want 0.8", tx.TxnCurrencyFxRate)
	}
	if tx.AmountInTxnCurrency == nil || *tx.AmountInTxnCurrency != -4000 {
		t.Fatalf("AmountInTxnCurrency = %v, want -4000", tx.AmountInTxnCurrency)
	}
	if f.rates.calls != 0 {
		t.Fatalf("fx source consulted %d times on the gateway path", f.rates.calls)
	}

	var data struct {
		PaymentResponses *paypal.PaymentResponses `json:"paymentResponses"`
	}
	if err := json.Unmarshal(f.activities.created[0].Data, &data); err != nil {
		t.Fatalf("decode activity data: %v", err)
	}
	if data.PaymentResponses == nil || data.PaymentResponses.ExecutePaymentResponse.PaymentExecStatus != paypal.StatusCompleted {
		t.Fatalf("activity payment responses = %+v", data.PaymentResponses)
	}
}

func TestCreateFromPaidExpensePayPalCreatedNeedsApproval(t *testing.T) {
	f := newServiceFixture(0)

	responses := paypalResponses(paypal.StatusCreated, 0, 0)
	_, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), responses, nil, 7)

	var actionRequired *domain.PaymentActionRequiredError
	if !errors.As(err, &actionRequired) {
		t.Fatalf("expected PaymentActionRequiredError, got %v", err)
	}
	if actionRequired.ApprovalURL != "https://www.paypal.com/approve?payKey=AP-123" {
		t.Fatalf("ApprovalURL = %q", actionRequired.ApprovalURL)
	}
	if len(f.transactions.created) != 0 || len(f.activities.created) != 0 {
		t.Fatal("nothing may be persisted when approval is pending")
	}
}

func TestCreateFromPaidExpensePayPalUnknownStatus(t *testing.T) {
	f := newServiceFixture(0)

	responses := paypalResponses("ERROR", 0, 0)
	_, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), responses, nil, 7)

	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gatewayErr.ExpenseID != 12 {
		t.Fatalf("ExpenseID = %d, want 12", gatewayErr.ExpenseID)
	}
	if len(f.transactions.created) != 0 || len(f.activities.created) != 0 {
		t.Fatal("nothing may be persisted on an unknown gateway state")
	}
}

func TestCreateFromPaidExpenseToleratesNaNFxRate(t *testing.T) {
	f := newServiceFixture(math.NaN())

	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), nil, nil, 7)
	if err != nil {
		t.Fatalf("CreateFromPaidExpense returned error: %v", err)
	}

	if tx.TxnCurrencyFxRate != nil {
		t.Fatalf("TxnCurrencyFxRate = %v, want unset", *tx.TxnCurrencyFxRate)
	}
	if tx.AmountInTxnCurrency != nil {
		t.Fatalf("AmountInTxnCurrency = %v, want unset", *tx.AmountInTxnCurrency)
	}
	if len(f.transactions.created) != 1 {
		t.Fatalf("expected transaction despite NaN rate, got %d", len(f.transactions.created))
	}
	if len(f.activities.created) != 1 {
		t.Fatalf("expected activity despite NaN rate, got %d", len(f.activities.created))
	}
}

func TestCreateFromPaidExpenseAttachesPaymentMethod(t *testing.T) {
	f := newServiceFixture(1)

	pm := &domain.PaymentMethod{ID: 33, UserID: 7, Service: domain.PaymentMethodServicePayPal, Token: "PA-key"}
	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), pm, testExpense(), nil, nil, 7)
	if err != nil {
		t.Fatalf("CreateFromPaidExpense returned error: %v", err)
	}

	if len(f.transactions.attached) != 1 {
		t.Fatalf("expected 1 attach, got %d", len(f.transactions.attached))
	}
	if got := f.transactions.attached[0]; got[0] != tx.ID || got[1] != 33 {
		t.Fatalf("attach args = %v", got)
	}
	if tx.PaymentMethodID == nil || *tx.PaymentMethodID != 33 {
		t.Fatalf("PaymentMethodID = %v, want 33", tx.PaymentMethodID)
	}
}

func TestCreateFromPaidExpenseAttachFailureIsBestEffort(t *testing.T) {
	f := newServiceFixture(1)
	f.transactions.attachErr = fmt.Errorf("connection reset")

	pm := &domain.PaymentMethod{ID: 33, UserID: 7}
	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), pm, testExpense(), nil, nil, 7)
	if err != nil {
		t.Fatalf("CreateFromPaidExpense returned error: %v", err)
	}
	if tx.PaymentMethodID != nil {
		t.Fatalf("PaymentMethodID = %v, want unset after failed attach", *tx.PaymentMethodID)
	}
	if len(f.activities.created) != 1 {
		t.Fatal("activity must still be emitted after a failed attach")
	}
}

func TestCreateFromPaidExpenseActivityFailureKeepsTransaction(t *testing.T) {
	f := newServiceFixture(1)
	f.activities.createErr = fmt.Errorf("activities table gone")

	tx, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), nil, nil, 7)
	if err == nil {
		t.Fatal("expected error when activity creation fails")
	}
	if tx == nil {
		t.Fatal("persisted transaction must be returned alongside the activity error")
	}
	if len(f.transactions.created) != 1 {
		t.Fatalf("expected transaction to stay persisted, got %d", len(f.transactions.created))
	}
}

func TestCreateFromPaidExpenseRejectsInvalidCurrency(t *testing.T) {
	f := newServiceFixture(1)

	expense := testExpense()
	expense.Currency = "EURO"
	_, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, expense, nil, nil, 7)
	if !errors.Is(err, domain.ErrInvalidCurrency) {
		t.Fatalf("error = %v, want ErrInvalidCurrency", err)
	}
	if len(f.transactions.created) != 0 {
		t.Fatal("no transaction may be persisted for an invalid currency")
	}
}

func TestCreateFromPaidExpenseFxLookupErrorAborts(t *testing.T) {
	f := newServiceFixture(0)
	f.rates.err = fmt.Errorf("rate API unreachable")

	_, err := f.service.CreateFromPaidExpense(context.Background(), testHost(), nil, testExpense(), nil, nil, 7)
	if err == nil {
		t.Fatal("expected error when fx lookup fails")
	}
	if len(f.transactions.created) != 0 {
		t.Fatal("no transaction may be persisted when the fx lookup fails")
	}
}
