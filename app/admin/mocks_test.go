package admin

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

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) GetUsers(ctx context.Context, filters *UserFilters) ([]models.User, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) UpdateLimits(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockRepository) UpdateSuspended(ctx context.Context, userID uuid.UUID, suspended bool) error {
	return m.Called(ctx, userID, suspended).Error(0)
}

func (m *MockRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockRepository) GetBets(ctx context.Context, filters *BetFilters) ([]models.Bet, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Bet), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetTransactions(ctx context.Context, filters *TransactionFilters) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListUsers(ctx context.Context, filters *UserFilters) ([]UserResponse, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]UserResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockService) GetUserDetails(ctx context.Context, userID uuid.UUID) (*UserDetailResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserDetailResponse), args.Error(1)
}

func (m *MockService) UpdateLimits(ctx context.Context, userID uuid.UUID, req *UpdateLimitsRequest) (*UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserResponse), args.Error(1)
}

func (m *MockService) SetSuspended(ctx context.Context, userID uuid.UUID, suspended bool) (*UserResponse, error) {
	args := m.Called(ctx, userID, suspended)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserResponse), args.Error(1)
}

func (m *MockService) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role models.Role) (*UserResponse, error) {
	args := m.Called(ctx, actorID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserResponse), args.Error(1)
}

func (m *MockService) SetBalance(ctx context.Context, userID uuid.UUID, balance int64) (*BalanceResponse, error) {
	args := m.Called(ctx, userID, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BalanceResponse), args.Error(1)
}

func (m *MockService) AdjustBalance(ctx context.Context, userID uuid.UUID, req *AdjustBalanceRequest) (*BalanceResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BalanceResponse), args.Error(1)
}

func (m *MockService) ListBets(ctx context.Context, filters *BetFilters) ([]AdminBetResponse, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]AdminBetResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockService) ListTransactions(ctx context.Context, filters *TransactionFilters) ([]AdminTransactionResponse, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]AdminTransactionResponse), args.Get(1).(int64), args.Error(2)
}

type MockSanitizer struct {
	mock.Mock
}

func (m *MockSanitizer) StripHTML(input string) string {
	return m.Called(input).String(0)
}
