package usecase

import (
	"context"
	"strings"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"
	"hirehub-backend/pkg/audit"
	"hirehub-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo  domain.UserRepository
	tokenRepo domain.RefreshTokenRepository
	tokens    *token.Manager
	audit     *audit.Logger
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	tokenRepo domain.RefreshTokenRepository,
	tokens *token.Manager,
	auditLog *audit.Logger,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		audit:     auditLog,
	}
}

// Register creates a user with an immutable role and hands back a fresh
// token pair. Email uniqueness is enforced at the storage layer and
// surfaces as a Conflict.
func (u *authUsecase) Register(ctx context.Context, user *domain.User, password string) (*domain.User, *domain.TokenPair, error) {
	user.Role = strings.ToUpper(user.Role)
	if user.Role != domain.RoleRecruiter && user.Role != domain.RoleCandidate {
		return nil, nil, apperror.BadRequest("Role must be RECRUITER or CANDIDATE")
	}
	if len(password) < 8 {
		return nil, nil, apperror.BadRequest("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, nil, mapRepoErr(err, "User not found")
	}

	pair, err := u.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		u.audit.Event(audit.EventLoginFailed, email)
		return nil, nil, apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		u.audit.Event(audit.EventLoginFailed, email)
		return nil, nil, apperror.Unauthorized("Invalid email or password")
	}

	pair, err := u.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	u.audit.Event(audit.EventLoginSuccess, email)
	return user, pair, nil
}

// Refresh rotates the refresh token: the presented token must verify as a
// refresh JWT AND still exist server-side. Both tokens are reissued and the
// old row is deleted; any failure fails the whole operation with no partial
// success.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := u.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	stored, err := u.tokenRepo.GetByHash(ctx, token.Hash(refreshToken))
	if err != nil {
		// Valid signature but unknown hash: already rotated or revoked.
		u.audit.Event(audit.EventRefreshReuse, "")
		return nil, apperror.Unauthorized("Refresh token has been revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperror.Unauthorized("Refresh token has expired")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("User no longer exists")
	}

	if err := u.tokenRepo.DeleteByHash(ctx, stored.TokenHash); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.issuePair(ctx, user)
}

// Logout revokes the presented refresh token. The access token simply ages
// out.
func (u *authUsecase) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return u.tokenRepo.DeleteByUserID(ctx, userID)
	}
	err := u.tokenRepo.DeleteByHash(ctx, token.Hash(refreshToken))
	if err != nil && err != domain.ErrNotFound {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) issuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := u.tokens.NewAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refresh, exp, err := u.tokens.NewRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.tokenRepo.Save(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: token.Hash(refresh),
		ExpiresAt: exp,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
