package usecase

import (
	"errors"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"
)

// mapRepoErr translates repository-level not-found into a 404 and leaves
// already-classified AppErrors intact; anything else is an internal error.
func mapRepoErr(err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
