package authservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"github.com/taskpay-ng/taskpay/internal/pg"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	userRepo  *MockUserRepo
	referral  *MockReferral
	hash      *MockHashService
	jwt       *MockJWTService
	txManager *pg.MockTXManager
}

func setup(t *testing.T) (*Service, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		userRepo:  NewMockUserRepo(ctrl),
		referral:  NewMockReferral(ctrl),
		hash:      NewMockHashService(ctrl),
		jwt:       NewMockJWTService(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
	}
	svc := New(m.userRepo, m.referral, m.hash, m.jwt, m.txManager)
	return svc, m
}

func passthroughTx(m *pg.MockTXManager) {
	m.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	referrer := &domain.User{ID: 7, ReferralCode: "TP-AAAA1111"}

	tests := []struct {
		name         string
		referralCode string
		setup        func(m *mocks)
		wantErr      error
		wantBalance  int64
	}{
		{
			name: "registers without referral",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, nil)
				m.referral.EXPECT().Resolve(ctx, "").Return(nil, nil)
				m.hash.EXPECT().HashPassword("secret-pass").Return("hashed", nil)
				passthroughTx(m.txManager)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						assert.Equal(t, "hashed", user.PasswordHash)
						assert.Equal(t, domain.RoleUser, user.Role)
						assert.Nil(t, user.ReferredBy)
						assert.NotEmpty(t, user.ReferralCode)
						user.ID = 1
						return user, nil
					})
			},
			wantBalance: 0,
		},
		{
			name:         "registers with referral and credits bonus",
			referralCode: "TP-AAAA1111",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, nil)
				m.referral.EXPECT().Resolve(ctx, "TP-AAAA1111").Return(referrer, nil)
				m.hash.EXPECT().HashPassword("secret-pass").Return("hashed", nil)
				passthroughTx(m.txManager)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						assert.Equal(t, &referrer.ID, user.ReferredBy)
						user.ID = 2
						return user, nil
					})
				m.referral.EXPECT().ApplySignupBonus(gomock.Any(), 2, 7).Return(int64(200), nil)
			},
			wantBalance: 200,
		},
		{
			name: "rejects taken email",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(&domain.User{ID: 3}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:         "rejects unknown referral code",
			referralCode: "TP-DEADBEEF",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, nil)
				m.referral.EXPECT().Resolve(ctx, "TP-DEADBEEF").Return(nil, errors.New("invalid referral code"))
			},
			wantErr: errors.New("invalid referral code"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setup(t)
			tt.setup(m)

			user, err := svc.Signup(ctx, "Ada", "ada@example.com", "08012345678", "secret-pass", tt.referralCode)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantBalance, user.Balance)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Email: "ada@example.com", PasswordHash: "hashed"}

	tests := []struct {
		name    string
		setup   func(m *mocks)
		wantErr error
	}{
		{
			name: "valid credentials",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(user, nil)
				m.hash.EXPECT().ComparePassword("hashed", "secret-pass").Return(true)
			},
		},
		{
			name: "unknown email",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(m *mocks) {
				m.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(user, nil)
				m.hash.EXPECT().ComparePassword("hashed", "secret-pass").Return(false)
			},
			wantErr: ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setup(t)
			tt.setup(m)

			got, err := svc.Authenticate(ctx, "ada@example.com", "secret-pass")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, user, got)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	svc, m := setup(t)
	user := &domain.User{ID: 1, Role: domain.RoleUser}

	m.jwt.EXPECT().GenerateJWT(1, domain.RoleUser, gomock.Any()).Return("token", nil)

	token, err := svc.GenerateToken(user)
	assert.NoError(t, err)
	assert.Equal(t, "token", token)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when missing", func(t *testing.T) {
		svc, m := setup(t)
		m.userRepo.EXPECT().FindByEmail(ctx, "admin@taskpay.ng").Return(nil, nil)
		m.hash.EXPECT().HashPassword("admin-pass").Return("hashed", nil)
		m.userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleAdmin, user.Role)
				assert.True(t, user.Premium)
				user.ID = 1
				return user, nil
			})

		admin, err := svc.EnsureAdmin(ctx, "admin@taskpay.ng", "admin-pass")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, admin.Role)
	})

	t.Run("keeps existing admin", func(t *testing.T) {
		svc, m := setup(t)
		existing := &domain.User{ID: 1, Role: domain.RoleAdmin}
		m.userRepo.EXPECT().FindByEmail(ctx, "admin@taskpay.ng").Return(existing, nil)

		admin, err := svc.EnsureAdmin(ctx, "admin@taskpay.ng", "admin-pass")
		assert.NoError(t, err)
		assert.Equal(t, existing, admin)
	})
}

func TestNewReferralCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewReferralCode()
		assert.True(t, strings.HasPrefix(code, "TP-"))
		assert.Len(t, code, 11)
		assert.False(t, seen[code])
		seen[code] = true
	}
}
