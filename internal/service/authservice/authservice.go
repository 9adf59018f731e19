package authservice

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByRoleAndName(ctx context.Context, role domain.Role, name string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateFCMToken(ctx context.Context, id int64, token string) error
}

type Notifier interface {
	Welcome(ctx context.Context, account *domain.Account) error
}

type Service struct {
	accountRepo Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	notifier    Notifier
	dispatcher  dispatch.Dispatcher
	tokenTTL    time.Duration
	managerKey  string
}

func New(cfg *config.Config, repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, notifier Notifier, dispatcher dispatch.Dispatcher) *Service {
	return &Service{
		accountRepo: repo,
		hashService: hashService,
		jwtService:  jwtService,
		notifier:    notifier,
		dispatcher:  dispatcher,
		tokenTTL:    cfg.TokenTTL,
		managerKey:  cfg.ManagerSignupKey,
	}
}

// Register creates an account of the given role. Manager signups must
// present the configured manager key. Vendors and riders start unapproved.
func (s *Service) Register(ctx context.Context, account *domain.Account, password, managerKey string) (*domain.Account, error) {
	if !account.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, account.Role)
	}
	if account.Role == domain.RoleManager {
		if s.managerKey == "" || subtle.ConstantTimeCompare([]byte(s.managerKey), []byte(managerKey)) != 1 {
			zap.L().Warn("manager signup with invalid key", zap.String("email", account.Email))
			return nil, fmt.Errorf("%w: invalid manager key", domain.ErrForbidden)
		}
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	account.Name = strings.TrimSpace(account.Name)

	existing, err := s.accountRepo.FindByEmail(ctx, account.Email)
	if err != nil {
		zap.L().Error("can't find account: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("account already exists", zap.String("email", account.Email))
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}
	if account.Role == domain.RoleVendor {
		sameName, err := s.accountRepo.FindByRoleAndName(ctx, domain.RoleVendor, account.Name)
		if err != nil {
			zap.L().Error("can't find vendor: ", zap.Error(err))
			return nil, err
		}
		if sameName != nil {
			return nil, fmt.Errorf("%w: store name already taken", domain.ErrConflict)
		}
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	account.PasswordHash = hashedPassword
	account.Valid = nil

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		zap.L().Error("can't create account: ", zap.Error(err))
		return nil, err
	}

	s.dispatcher.Submit("welcome-email", func(ctx context.Context) error {
		return s.notifier.Welcome(ctx, created)
	})

	zap.L().Info("account successfully registered", zap.String("email", created.Email), zap.String("role", string(created.Role)))
	return created, nil
}

// Authenticate checks credentials for the given role and refreshes the
// device token when the client sends a new one.
func (s *Service) Authenticate(ctx context.Context, role domain.Role, email, password, fcmToken string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		zap.L().Error("can't find account: ", zap.Error(err))
		return nil, err
	}
	if account == nil || account.Role != role {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if ok := s.hashService.ComparePassword(account.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !account.CanAuthenticate() {
		return nil, fmt.Errorf("%w: account is awaiting approval", domain.ErrForbidden)
	}

	if fcmToken != "" && fcmToken != account.FCMToken {
		if err := s.accountRepo.UpdateFCMToken(ctx, account.ID, fcmToken); err != nil {
			zap.L().Error("can't update fcm token", zap.Int64("account_id", account.ID), zap.Error(err))
		} else {
			account.FCMToken = fcmToken
		}
	}

	zap.L().Info("account successfully authenticated", zap.Int64("account_id", account.ID))
	return account, nil
}

func (s *Service) GenerateToken(account *domain.Account) (string, error) {
	expirationTime := time.Now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(account.ID, string(account.Role), expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
