package usecase_test

import (
	"context"
	"testing"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"
	"hirehub-backend/pkg/audit"
	"hirehub-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(userRepo *MockUserRepo, tokenRepo *MockRefreshTokenRepo) (domain.AuthUsecase, *token.Manager) {
	tokens := token.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return usecase.NewAuthUsecase(userRepo, tokenRepo, tokens, audit.NewLogger("test")), tokens
}

func TestRegister(t *testing.T) {
	t.Run("rejects unknown roles", func(t *testing.T) {
		uc, _ := newAuthUsecase(new(MockUserRepo), new(MockRefreshTokenRepo))
		_, _, err := uc.Register(context.Background(), &domain.User{Email: "a@b.c", Role: "ADMIN"}, "password123")
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		uc, _ := newAuthUsecase(new(MockUserRepo), new(MockRefreshTokenRepo))
		_, _, err := uc.Register(context.Background(), &domain.User{Email: "a@b.c", Role: domain.RoleCandidate}, "short")
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("hashes the password and issues a pair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokenRepo := new(MockRefreshTokenRepo)
		uc, _ := newAuthUsecase(userRepo, tokenRepo)

		userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)
		tokenRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		user, pair, err := uc.Register(context.Background(), &domain.User{Email: "a@b.c", Role: "candidate"}, "password123")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Email: "a@b.c", Role: domain.RoleCandidate, PasswordHash: string(hash)}

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc, _ := newAuthUsecase(userRepo, new(MockRefreshTokenRepo))
		userRepo.On("GetByEmail", mock.Anything, "a@b.c").Return(stored, nil)

		_, _, err := uc.Login(context.Background(), "a@b.c", "wrong")
		assert.Equal(t, 401, appErrCode(t, err))
	})

	t.Run("unknown email is unauthorized, same message", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc, _ := newAuthUsecase(userRepo, new(MockRefreshTokenRepo))
		userRepo.On("GetByEmail", mock.Anything, "ghost@b.c").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "ghost@b.c", "password123")
		assert.Equal(t, 401, appErrCode(t, err))
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("valid credentials issue a pair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokenRepo := new(MockRefreshTokenRepo)
		uc, _ := newAuthUsecase(userRepo, tokenRepo)
		userRepo.On("GetByEmail", mock.Anything, "a@b.c").Return(stored, nil)
		tokenRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, pair, err := uc.Login(context.Background(), "a@b.c", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.RefreshToken)
	})
}

func TestRefresh(t *testing.T) {
	user := &domain.User{ID: 7, Email: "a@b.c", Role: domain.RoleCandidate}

	issue := func(t *testing.T, tokens *token.Manager) (string, time.Time) {
		t.Helper()
		refresh, exp, err := tokens.NewRefreshToken(user.ID, user.Role)
		require.NoError(t, err)
		return refresh, exp
	}

	t.Run("rotation deletes the old row and saves a new one", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokenRepo := new(MockRefreshTokenRepo)
		uc, tokens := newAuthUsecase(userRepo, tokenRepo)

		refresh, exp := issue(t, tokens)
		oldHash := token.Hash(refresh)

		tokenRepo.On("GetByHash", mock.Anything, oldHash).
			Return(&domain.RefreshToken{UserID: 7, TokenHash: oldHash, ExpiresAt: exp}, nil)
		userRepo.On("GetByID", mock.Anything, int64(7)).Return(user, nil)
		tokenRepo.On("DeleteByHash", mock.Anything, oldHash).Return(nil)

		var savedHash string
		tokenRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			savedHash = args.Get(1).(*domain.RefreshToken).TokenHash
		}).Return(nil)

		pair, err := uc.Refresh(context.Background(), refresh)
		require.NoError(t, err)
		assert.NotEqual(t, refresh, pair.RefreshToken)
		assert.NotEqual(t, oldHash, savedHash)
		tokenRepo.AssertCalled(t, "DeleteByHash", mock.Anything, oldHash)
	})

	t.Run("an access token is not a refresh token", func(t *testing.T) {
		uc, tokens := newAuthUsecase(new(MockUserRepo), new(MockRefreshTokenRepo))
		access, err := tokens.NewAccessToken(user.ID, user.Role)
		require.NoError(t, err)

		_, err = uc.Refresh(context.Background(), access)
		assert.Equal(t, 401, appErrCode(t, err))
	})

	t.Run("valid signature with unknown hash is treated as reuse", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepo)
		uc, tokens := newAuthUsecase(new(MockUserRepo), tokenRepo)

		refresh, _ := issue(t, tokens)
		tokenRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := uc.Refresh(context.Background(), refresh)
		assert.Equal(t, 401, appErrCode(t, err))
	})

	t.Run("expired server-side row is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokenRepo := new(MockRefreshTokenRepo)
		uc, tokens := newAuthUsecase(userRepo, tokenRepo)

		refresh, _ := issue(t, tokens)
		hash := token.Hash(refresh)
		tokenRepo.On("GetByHash", mock.Anything, hash).
			Return(&domain.RefreshToken{UserID: 7, TokenHash: hash, ExpiresAt: time.Now().Add(-time.Hour)}, nil)

		_, err := uc.Refresh(context.Background(), refresh)
		assert.Equal(t, 401, appErrCode(t, err))
		tokenRepo.AssertNotCalled(t, "DeleteByHash")
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		uc, _ := newAuthUsecase(new(MockUserRepo), new(MockRefreshTokenRepo))
		_, err := uc.Refresh(context.Background(), "not-a-jwt")
		assert.Equal(t, 401, appErrCode(t, err))
	})
}

func TestLogout(t *testing.T) {
	t.Run("without a token revokes everything for the user", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepo)
		uc, _ := newAuthUsecase(new(MockUserRepo), tokenRepo)
		tokenRepo.On("DeleteByUserID", mock.Anything, int64(7)).Return(nil)

		require.NoError(t, uc.Logout(context.Background(), 7, ""))
		tokenRepo.AssertCalled(t, "DeleteByUserID", mock.Anything, int64(7))
	})

	t.Run("revoking an already revoked token succeeds", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepo)
		uc, _ := newAuthUsecase(new(MockUserRepo), tokenRepo)
		tokenRepo.On("DeleteByHash", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

		assert.NoError(t, uc.Logout(context.Background(), 7, "some-token"))
	})
}
