package service

import (
	"context"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type referenceRepository interface {
	Exists(ctx context.Context, table, id string) (bool, error)
}

// ReferenceValidator confirms that referenced rows exist before a write.
type ReferenceValidator struct {
	repo referenceRepository
}

// NewReferenceValidator constructs a ReferenceValidator.
func NewReferenceValidator(repo referenceRepository) *ReferenceValidator {
	return &ReferenceValidator{repo: repo}
}

// Validate checks each reference in order and stops at the first missing one.
func (v *ReferenceValidator) Validate(ctx context.Context, checks ...models.ReferenceCheck) error {
	for _, check := range checks {
		exists, err := v.repo.Exists(ctx, check.Ref.Table, check.ID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate references")
		}
		if !exists {
			return appErrors.ReferenceNotFound(check.Ref.Label)
		}
	}
	return nil
}
