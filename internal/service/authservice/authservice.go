package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"github.com/taskpay-ng/taskpay/pkg/auth"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Referral interface {
	Resolve(ctx context.Context, referralCode string) (*domain.User, error)
	ApplySignupBonus(ctx context.Context, userID, referrerID int) (int64, error)
}

type Service struct {
	userRepo    UserRepo
	referral    Referral
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	txManager   pg.TXManager
}

func New(userRepo UserRepo, referral Referral, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    userRepo,
		referral:    referral,
		hashService: hashService,
		jwtService:  jwtService,
		txManager:   txManager,
	}
}

// Signup creates the account, links the referrer when a referral code is
// presented and credits the welcome bonus in the same transaction.
func (s *Service) Signup(ctx context.Context, name, email, phone, password, referralCode string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("email already registered", zap.String("email", email))
		return nil, ErrEmailTaken
	}

	referrer, err := s.referral.Resolve(ctx, referralCode)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		ReferralCode: NewReferralCode(),
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			zap.L().Error("can't create user: ", zap.Error(err))
			return err
		}
		if referrer != nil {
			bonus, err := s.referral.ApplySignupBonus(ctx, user.ID, referrer.ID)
			if err != nil {
				return err
			}
			user.Balance = bonus
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("email", email))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("email", email))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)

	token, err := s.jwtService.GenerateJWT(user.ID, user.Role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

// EnsureAdmin seeds the administrator account on startup when it does not
// exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	admin, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return admin, nil
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin = &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
		Premium:      true,
		ReferralCode: NewReferralCode(),
	}
	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	zap.L().Info("admin account seeded", zap.String("email", email))
	return admin, nil
}

// NewReferralCode derives a short unique share code.
func NewReferralCode() string {
	id := uuid.NewString()
	return "TP-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
