package repository

import (
	"context"

	"khanaveve/internal/domain/model"
)

type MembershipRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Membership, error)
	Save(ctx context.Context, m model.Membership) error
}
