package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	// GetByUserIDForUpdate row-locks the wallet until the surrounding
	// transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	// EnsureWallet creates an empty wallet unless one already exists.
	EnsureWallet(ctx context.Context, userID uuid.UUID) error
	UpdateBalance(ctx context.Context, wallet *models.Wallet) error

	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int64, error)

	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &wallet, nil
}

func (r *repository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &wallet, nil
}

func (r *repository) EnsureWallet(ctx context.Context, userID uuid.UUID) error {
	wallet := &models.Wallet{UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(wallet).Error
}

func (r *repository) UpdateBalance(ctx context.Context, wallet *models.Wallet) error {
	if err := wallet.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(wallet).
		Update("balance", wallet.Balance).Error
}

func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *repository) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	return transactions, total, err
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
