package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockRepository) EnsureWallet(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRepository) UpdateBalance(ctx context.Context, wallet *models.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *MockRepository) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

type MockService struct {
	mock.Mock
}

func (m *MockService) GetWallet(ctx context.Context, userID uuid.UUID) (*Response, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

func (m *MockService) Deposit(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OperationResponse), args.Error(1)
}

func (m *MockService) Withdraw(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OperationResponse), args.Error(1)
}

func (m *MockService) GetTransactions(ctx context.Context, userID uuid.UUID, page, perPage int) ([]TransactionResponse, int64, error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).([]TransactionResponse), args.Get(1).(int64), args.Error(2)
}
