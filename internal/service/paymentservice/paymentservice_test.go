package paymentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
)

const secret = "sk_test"

type mocks struct {
	accounts    *MockAccountRepo
	payments    *MockPaymentRepo
	ledger      *MockLedgerRepo
	tx          *pg.MockTXManager
	verifier    *MockVerifier
	notifier    *MockNotifier
	broadcaster *realtime.MockBroadcaster
	dispatcher  *dispatch.MockDispatcher
	audit       *observer.ObservedLogs
	waits       []time.Duration
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	core, logs := observer.New(zap.InfoLevel)
	m := &mocks{
		accounts:    NewMockAccountRepo(ctrl),
		payments:    NewMockPaymentRepo(ctrl),
		ledger:      NewMockLedgerRepo(ctrl),
		tx:          pg.NewMockTXManager(ctrl),
		verifier:    NewMockVerifier(ctrl),
		notifier:    NewMockNotifier(ctrl),
		broadcaster: realtime.NewMockBroadcaster(ctrl),
		dispatcher:  dispatch.NewMockDispatcher(ctrl),
		audit:       logs,
	}
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		}).AnyTimes()
	m.dispatcher.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, task dispatch.Task) bool {
			_ = task(context.Background())
			return true
		}).AnyTimes()

	service := New(secret, zap.New(core), m.accounts, m.payments, m.ledger, m.tx, m.verifier, m.notifier, m.broadcaster, m.dispatcher)
	service.wait = func(_ context.Context, d time.Duration) error {
		m.waits = append(m.waits, d)
		return nil
	}
	return service, m
}

const chargeSuccess = `{"event":"charge.success","data":{"reference":"T123","amount":510000,"status":"success","customer":{"email":"Ada@Mail.test"},"metadata":{"amount":"5000"}}}`

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()
	ada := &domain.Account{ID: 1, Email: "ada@mail.test"}

	tests := []struct {
		name           string
		body           string
		signature      func(body string) string
		prepareMock    func(m *mocks)
		expectedResult WebhookResult
		expectedError  error
	}{
		{
			name: "Credits the intended amount",
			body: chargeSuccess,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T123").Return(false, nil)
				m.accounts.EXPECT().FindByEmail(gomock.Any(), "ada@mail.test").Return(ada, nil)
				m.payments.EXPECT().MarkProcessed(gomock.Any(), "T123", int64(1)).Return(true, nil)
				m.ledger.EXPECT().Apply(gomock.Any(), domain.LedgerDelta{AccountID: 1, Amount: 5000, Reference: "T123", Description: "Wallet top-up"}).
					Return(&domain.LedgerEntry{AccountID: 1, NewBalance: 5000}, nil)
				m.broadcaster.EXPECT().Emit(realtime.EventUserBalanceUpdate, BalanceUpdate{UserID: 1, AvailableBal: 5000})
			},
			expectedResult: ResultCredited,
		},
		{
			name: "Estimates the net amount without metadata",
			body: `{"event":"charge.success","data":{"reference":"T124","amount":510000,"customer":{"email":"ada@mail.test"},"metadata":""}}`,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T124").Return(false, nil)
				m.accounts.EXPECT().FindByEmail(gomock.Any(), "ada@mail.test").Return(ada, nil)
				m.payments.EXPECT().MarkProcessed(gomock.Any(), "T124", int64(1)).Return(true, nil)
				m.ledger.EXPECT().Apply(gomock.Any(), domain.LedgerDelta{AccountID: 1, Amount: 4923, Reference: "T124", Description: "Wallet top-up"}).
					Return(&domain.LedgerEntry{AccountID: 1, NewBalance: 4923}, nil)
				m.broadcaster.EXPECT().Emit(realtime.EventUserBalanceUpdate, gomock.Any())
			},
			expectedResult: ResultCredited,
		},
		{
			name: "Replay is acknowledged without credit",
			body: chargeSuccess,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T123").Return(true, nil)
			},
			expectedResult: ResultAlreadyProcessed,
		},
		{
			name: "Concurrent delivery loses the insert",
			body: chargeSuccess,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T123").Return(false, nil)
				m.accounts.EXPECT().FindByEmail(gomock.Any(), "ada@mail.test").Return(ada, nil)
				m.payments.EXPECT().MarkProcessed(gomock.Any(), "T123", int64(1)).Return(false, nil)
			},
			expectedResult: ResultAlreadyProcessed,
		},
		{
			name: "Unknown customer",
			body: chargeSuccess,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T123").Return(false, nil)
				m.accounts.EXPECT().FindByEmail(gomock.Any(), "ada@mail.test").Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:           "Other events are ignored",
			body:           `{"event":"transfer.success","data":{"reference":"TR1"}}`,
			prepareMock:    func(m *mocks) {},
			expectedResult: ResultIgnored,
		},
		{
			name:          "Bad signature",
			body:          chargeSuccess,
			signature:     func(string) string { return paystack.Sign("sk_other", []byte(chargeSuccess)) },
			prepareMock:   func(m *mocks) {},
			expectedError: domain.ErrSignatureInvalid,
		},
		{
			name: "Malformed body alerts the operator",
			body: `{"event":`,
			prepareMock: func(m *mocks) {
				m.notifier.EXPECT().OperatorAlert(gomock.Any(), "Paystack Webhook Processing Error", gomock.Any()).Return(nil)
			},
			expectedError: domain.ErrValidation,
		},
		{
			name: "Missing customer email alerts the operator",
			body: `{"event":"charge.success","data":{"reference":"T125","amount":510000,"customer":{"email":""}}}`,
			prepareMock: func(m *mocks) {
				m.notifier.EXPECT().OperatorAlert(gomock.Any(), "Paystack Webhook Processing Error", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, detail string) error {
						assert.Contains(t, detail, "T125")
						return nil
					})
			},
			expectedError: domain.ErrValidation,
		},
		{
			name: "Database failure alerts the operator",
			body: chargeSuccess,
			prepareMock: func(m *mocks) {
				m.payments.EXPECT().IsProcessed(gomock.Any(), "T123").Return(false, errors.New("db down"))
				m.notifier.EXPECT().OperatorAlert(gomock.Any(), "Paystack Webhook Processing Error", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, detail string) error {
						assert.Contains(t, detail, "db down")
						assert.Contains(t, detail, "T123")
						return nil
					})
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			signature := paystack.Sign(secret, []byte(tt.body))
			if tt.signature != nil {
				signature = tt.signature(tt.body)
			}
			result, err := service.HandleWebhook(ctx, []byte(tt.body), signature)

			audit := m.audit.FilterMessage("paystack webhook").All()
			require.Len(t, audit, 1)
			assert.Equal(t, tt.body, audit[0].ContextMap()["event"])

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					require.Error(t, err)
					assert.Equal(t, tt.expectedError.Error(), err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAuditUnreadable(t *testing.T) {
	service, m := NewMock(t)

	service.AuditUnreadable([]byte(`{"event":"charge.su`), errors.New("http: request body too large"))

	audit := m.audit.FilterMessage("paystack webhook").All()
	require.Len(t, audit, 1)
	assert.Equal(t, `{"event":"charge.su`, audit[0].ContextMap()["event"])
	assert.Equal(t, true, audit[0].ContextMap()["truncated"])

	failed := m.audit.FilterMessage("paystack webhook body unreadable").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "http: request body too large", failed[0].ContextMap()["error"])
}

func successful(amountKobo int64) *paystack.VerifyResponse {
	return &paystack.VerifyResponse{Status: true, Data: paystack.Transaction{Status: "success", Reference: "T123", Amount: amountKobo}}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	service, m := NewMock(t)

	m.verifier.EXPECT().Verify(ctx, "T123").Return(successful(500000), nil)
	resp, err := service.Verify(ctx, "T123")
	require.NoError(t, err)
	assert.True(t, resp.Successful())

	m.verifier.EXPECT().Verify(ctx, "T124").Return(&paystack.VerifyResponse{Status: true, Data: paystack.Transaction{Status: "failed"}}, nil)
	_, err = service.Verify(ctx, "T124")
	assert.ErrorIs(t, err, paystack.ErrNotSuccessful)

	m.verifier.EXPECT().Verify(ctx, "T125").Return(nil, domain.ErrUpstream)
	_, err = service.Verify(ctx, "T125")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestConfirmTopUp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		amount        int64
		prepareMock   func(m *mocks)
		expectedError error
		expectedWaits []time.Duration
	}{
		{
			name:   "Matching amount",
			amount: 5000,
			prepareMock: func(m *mocks) {
				m.verifier.EXPECT().Verify(ctx, "T123").Return(successful(500000), nil)
			},
		},
		{
			name:   "Retries once when the reference is not indexed yet",
			amount: 5000,
			prepareMock: func(m *mocks) {
				gomock.InOrder(
					m.verifier.EXPECT().Verify(ctx, "T123").Return(nil, paystack.ErrReferenceNotFound),
					m.verifier.EXPECT().Verify(ctx, "T123").Return(successful(500000), nil),
				)
			},
			expectedWaits: []time.Duration{time.Second},
		},
		{
			name:   "Still not found after retry",
			amount: 5000,
			prepareMock: func(m *mocks) {
				m.verifier.EXPECT().Verify(ctx, "T123").Return(nil, paystack.ErrReferenceNotFound).Times(2)
			},
			expectedError: paystack.ErrReferenceNotFound,
			expectedWaits: []time.Duration{time.Second},
		},
		{
			name:   "Amount mismatch",
			amount: 5000,
			prepareMock: func(m *mocks) {
				m.verifier.EXPECT().Verify(ctx, "T123").Return(successful(510000), nil)
			},
			expectedError: paystack.ErrNotSuccessful,
		},
		{
			name:          "Missing amount",
			prepareMock:   func(m *mocks) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			_, err := service.ConfirmTopUp(ctx, "T123", tt.amount)
			assert.Equal(t, tt.expectedWaits, m.waits)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
