package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// AccountGormDirectory answers role/activity lookups against the local
// accounts table. The scheduler only reads; account management is owned
// elsewhere.
type AccountGormDirectory struct {
	db *gorm.DB
}

func NewAccountGormDirectory(db *gorm.DB) *AccountGormDirectory {
	return &AccountGormDirectory{db: db}
}

func (d *AccountGormDirectory) ResolveAccount(
	ctx context.Context,
	id string,
) (*domain.AccountRef, error) {

	var acc models.Account
	if err := d.db.WithContext(ctx).
		Select("id", "role", "active").
		Where("id = ?", id).
		First(&acc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Err(domain.KindInvalidRole)
		}
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return &domain.AccountRef{
		ID:     acc.ID,
		Role:   domain.ActorRole(acc.Role),
		Active: acc.Active,
	}, nil
}

var _ domain.AccountDirectory = (*AccountGormDirectory)(nil)
