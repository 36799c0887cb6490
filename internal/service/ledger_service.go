package service

import (
	"context"
	"time"

	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// LedgerService manages expense records.
type LedgerService struct {
	expenses repository.ExpenseRepository
}

// ExpenseInput describes expense create/update payload.
type ExpenseInput struct {
	Description string
	Category    string
	Amount      float64
	SpentAt     *time.Time
}

// NewLedgerService constructs the service.
func NewLedgerService(expenses repository.ExpenseRepository) *LedgerService {
	return &LedgerService{expenses: expenses}
}

// CreateExpense records a new expense.
func (s *LedgerService) CreateExpense(ctx context.Context, accountID string, input ExpenseInput) (*domain.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	spentAt := time.Now()
	if input.SpentAt != nil {
		spentAt = *input.SpentAt
	}

	expense := &domain.Expense{
		AccountID:   accountID,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		SpentAt:     spentAt,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense edits an expense record.
func (s *LedgerService) UpdateExpense(ctx context.Context, accountID, expenseID string, input ExpenseInput) (*domain.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	expense, err := s.expenses.GetByID(ctx, accountID, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Description = input.Description
	expense.Category = input.Category
	expense.Amount = input.Amount
	if input.SpentAt != nil {
		expense.SpentAt = *input.SpentAt
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense record.
func (s *LedgerService) DeleteExpense(ctx context.Context, accountID, expenseID string) error {
	return s.expenses.Delete(ctx, accountID, expenseID)
}

// GetExpense loads one expense.
func (s *LedgerService) GetExpense(ctx context.Context, accountID, expenseID string) (*domain.Expense, error) {
	return s.expenses.GetByID(ctx, accountID, expenseID)
}

// ListExpenses lists expenses with filters.
func (s *LedgerService) ListExpenses(ctx context.Context, accountID string, filter repository.ExpenseFilter) ([]domain.Expense, error) {
	return s.expenses.List(ctx, accountID, filter)
}
