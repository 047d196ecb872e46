package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

// GormLedgerRepository persists the entitlement ledger. Payments are
// append-only; there is deliberately no update or delete method.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

// Append records a payment. The unique index on transaction_id makes the
// append atomic at the row level: exactly one concurrent confirmation wins,
// every other one gets ErrDuplicateTransaction.
func (r *GormLedgerRepository) Append(ctx context.Context, payment *domain.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTransaction
	}
	return err
}

func (r *GormLedgerRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormLedgerRepository) FindBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subject).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *GormLedgerRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
