package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
)

const (
	alertSubject = "Paystack Webhook Processing Error"
	confirmRetry = time.Second
)

type WebhookResult string

const (
	ResultCredited         WebhookResult = "Wallet credited"
	ResultAlreadyProcessed WebhookResult = "Already processed"
	ResultIgnored          WebhookResult = "Ignored"
)

type AccountRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type PaymentRepo interface {
	IsProcessed(ctx context.Context, reference string) (bool, error)
	MarkProcessed(ctx context.Context, reference string, accountID int64) (bool, error)
}

type LedgerRepo interface {
	Apply(ctx context.Context, delta domain.LedgerDelta) (*domain.LedgerEntry, error)
}

type Verifier interface {
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

type Notifier interface {
	OperatorAlert(ctx context.Context, subject, detail string) error
}

type BalanceUpdate struct {
	UserID       int64 `json:"userId"`
	AvailableBal int64 `json:"availableBal"`
}

type Service struct {
	accountRepo AccountRepo
	paymentRepo PaymentRepo
	ledgerRepo  LedgerRepo
	txManager   pg.TXManager
	verifier    Verifier
	notifier    Notifier
	broadcaster realtime.Broadcaster
	dispatcher  dispatch.Dispatcher
	audit       *zap.Logger
	secret      string
	wait        func(ctx context.Context, d time.Duration) error
}

func New(
	secret string,
	audit *zap.Logger,
	accountRepo AccountRepo,
	paymentRepo PaymentRepo,
	ledgerRepo LedgerRepo,
	txManager pg.TXManager,
	verifier Verifier,
	notifier Notifier,
	broadcaster realtime.Broadcaster,
	dispatcher dispatch.Dispatcher,
) *Service {
	if audit == nil {
		audit = zap.NewNop()
	}
	return &Service{
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
		txManager:   txManager,
		verifier:    verifier,
		notifier:    notifier,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		audit:       audit,
		secret:      secret,
		wait:        sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// HandleWebhook reconciles a Paystack event. Every body is written to the
// audit log before the signature is checked. A reference is credited at most
// once; unexpected failures alert the operator.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (WebhookResult, error) {
	s.audit.Info("paystack webhook", zap.ByteString("event", body))

	if !paystack.VerifySignature(s.secret, body, signature) {
		zap.L().Warn("paystack webhook with invalid signature")
		return "", domain.ErrSignatureInvalid
	}

	result, err := s.reconcile(ctx, body)
	if err != nil {
		s.audit.Error("paystack webhook failed", zap.Error(err))
		if !errors.Is(err, domain.ErrNotFound) {
			s.alert(err, body)
		}
		return "", err
	}
	return result, nil
}

// AuditUnreadable records a webhook whose body could not be read in full.
func (s *Service) AuditUnreadable(body []byte, err error) {
	s.audit.Info("paystack webhook", zap.ByteString("event", body), zap.Bool("truncated", true))
	s.audit.Error("paystack webhook body unreadable", zap.Error(err))
}

func (s *Service) reconcile(ctx context.Context, body []byte) (WebhookResult, error) {
	event, err := paystack.ParseEvent(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if event.Event != paystack.EventChargeSuccess {
		zap.L().Info("paystack event ignored", zap.String("event", event.Event))
		return ResultIgnored, nil
	}

	data := event.Data
	email := strings.ToLower(strings.TrimSpace(data.Customer.Email))
	if data.Reference == "" || email == "" {
		return "", fmt.Errorf("%w: reference and customer email are required", domain.ErrValidation)
	}
	amount := data.CreditAmount()
	if amount <= 0 {
		return "", fmt.Errorf("%w: nothing to credit for %s", domain.ErrValidation, data.Reference)
	}

	result := ResultCredited
	var entry *domain.LedgerEntry
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		processed, err := s.paymentRepo.IsProcessed(ctx, data.Reference)
		if err != nil {
			return err
		}
		if processed {
			result = ResultAlreadyProcessed
			return nil
		}

		account, err := s.accountRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrAccountNotFound
		}

		inserted, err := s.paymentRepo.MarkProcessed(ctx, data.Reference, account.ID)
		if err != nil {
			return err
		}
		if !inserted {
			result = ResultAlreadyProcessed
			return nil
		}

		entry, err = s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   account.ID,
			Amount:      amount,
			Reference:   data.Reference,
			Description: "Wallet top-up",
		})
		return err
	})
	if err != nil {
		return "", err
	}

	if entry != nil {
		s.dispatcher.Submit("balance-updated", func(context.Context) error {
			s.broadcaster.Emit(realtime.EventUserBalanceUpdate, BalanceUpdate{UserID: entry.AccountID, AvailableBal: entry.NewBalance})
			return nil
		})
		zap.L().Info("wallet credited from paystack", zap.String("reference", data.Reference), zap.Int64("account_id", entry.AccountID), zap.Int64("amount", amount))
	} else {
		zap.L().Info("paystack reference already processed", zap.String("reference", data.Reference))
	}
	return result, nil
}

func (s *Service) alert(err error, body []byte) {
	detail := fmt.Sprintf("Error: %v\nEvent: %s", err, body)
	s.dispatcher.Submit("webhook-alert", func(ctx context.Context) error {
		return s.notifier.OperatorAlert(ctx, alertSubject, detail)
	})
}

// Verify checks a transaction with Paystack. It never credits the wallet;
// the webhook does.
func (s *Service) Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error) {
	resp, err := s.verifier.Verify(ctx, reference)
	if err != nil {
		zap.L().Error("paystack verification failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if !resp.Successful() {
		return resp, paystack.ErrNotSuccessful
	}
	return resp, nil
}

// ConfirmTopUp verifies that the reference paid exactly amount. Paystack may
// not know a fresh reference yet, so a not-found answer is retried once.
func (s *Service) ConfirmTopUp(ctx context.Context, reference string, amount int64) (*paystack.VerifyResponse, error) {
	if reference == "" || amount <= 0 {
		return nil, fmt.Errorf("%w: amount and payment reference are required", domain.ErrValidation)
	}

	resp, err := s.verifier.Verify(ctx, reference)
	if errors.Is(err, paystack.ErrReferenceNotFound) {
		zap.L().Info("paystack reference not found yet, retrying", zap.String("reference", reference))
		if werr := s.wait(ctx, confirmRetry); werr != nil {
			return nil, werr
		}
		resp, err = s.verifier.Verify(ctx, reference)
	}
	if err != nil {
		zap.L().Error("paystack verification failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if !resp.Successful() || resp.Data.Amount != amount*100 {
		zap.L().Warn("paystack verification mismatch", zap.String("reference", reference), zap.Int64("expected", amount), zap.Int64("charged_kobo", resp.Data.Amount))
		return resp, fmt.Errorf("%w: verification failed or amount mismatch", paystack.ErrNotSuccessful)
	}
	return resp, nil
}
