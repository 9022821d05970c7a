// services/resolver.go
package services

import (
	"context"
	"errors"

	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
	"github.com/aprovacriativos/aprova_backend/utils"
)

// Resolver maps a free-form identifier to exactly one active approver.
type Resolver struct {
	approvers ApproverStore
}

// NewResolver creates a new identifier resolver
func NewResolver(approvers ApproverStore) *Resolver {
	return &Resolver{approvers: approvers}
}

// Resolve classifies and normalizes the identifier, then looks up the
// single active approver it belongs to. Zero or ambiguous matches both
// come back as repositories.ErrNotFound so callers cannot probe which
// identifiers are registered.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*models.Approver, string, string, error) {
	kind, normalized, err := utils.ClassifyIdentifier(raw)
	if err != nil {
		return nil, "", "", ErrValidation
	}

	var approver *models.Approver
	switch kind {
	case utils.IdentifierEmail:
		approver, err = r.approvers.FindActiveByEmail(ctx, normalized)
	case utils.IdentifierPhone:
		approver, err = r.approvers.FindActiveByPhone(ctx, normalized)
	}

	if err != nil {
		if errors.Is(err, repositories.ErrAmbiguous) {
			// An ambiguous directory is a data problem, but to the
			// caller it must look exactly like a miss.
			return nil, kind, normalized, repositories.ErrNotFound
		}
		return nil, kind, normalized, err
	}

	return approver, kind, normalized, nil
}
