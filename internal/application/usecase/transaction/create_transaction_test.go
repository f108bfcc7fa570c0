// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

type fakeTransactionRepo struct {
	byID      map[uuid.UUID]*entity.Transaction
	created   []*entity.Transaction
	deleted   []uuid.UUID
	listInput adapter.TransactionFilter
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: make(map[uuid.UUID]*entity.Transaction)}
}

func (f *fakeTransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	f.created = append(f.created, tx)
	f.byID[tx.ID] = tx
	return nil
}
func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := f.byID[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return tx, nil
}
func (f *fakeTransactionRepo) List(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	f.listInput = filter
	return &entity.TransactionListResult{Page: pagination.Page, Limit: pagination.Limit}, nil
}
func (f *fakeTransactionRepo) FindForAnalysis(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, since time.Time, limit int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func validInput() CreateTransactionInput {
	return CreateTransactionInput{
		UserID:        uuid.New(),
		Type:          entity.TransactionTypeExpense,
		Amount:        decimal.NewFromInt(15000),
		Currency:      entity.CurrencyARS,
		Category:      "Comida",
		Description:   "Supermercado",
		Date:          time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "débito",
	}
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	t.Run("creates a valid transaction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewCreateTransactionUseCase(repo)

		output, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.ID == uuid.Nil {
			t.Error("expected an ID to be assigned")
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected 1 created transaction, got %d", len(repo.created))
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(*CreateTransactionInput)
			wantErr error
		}{
			{"bad type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domainerror.ErrInvalidTransactionType},
			{"zero amount", func(in *CreateTransactionInput) { in.Amount = decimal.Zero }, domainerror.ErrInvalidAmount},
			{"negative amount", func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-5) }, domainerror.ErrInvalidAmount},
			{"bad currency", func(in *CreateTransactionInput) { in.Currency = "EUR" }, domainerror.ErrInvalidCurrency},
			{"empty category", func(in *CreateTransactionInput) { in.Category = "" }, domainerror.ErrMissingCategory},
			{"zero date", func(in *CreateTransactionInput) { in.Date = time.Time{} }, domainerror.ErrMissingDate},
			{"long description", func(in *CreateTransactionInput) { in.Description = strings.Repeat("x", 300) }, domainerror.ErrDescriptionTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newFakeTransactionRepo()
				uc := NewCreateTransactionUseCase(repo)
				input := validInput()
				tt.mutate(&input)

				_, err := uc.Execute(context.Background(), input)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if len(repo.created) != 0 {
					t.Error("expected nothing to be persisted")
				}
			})
		}
	})
}

func TestDeleteTransactionUseCase_Execute(t *testing.T) {
	t.Run("deletes an owned transaction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		userID := uuid.New()
		tx := entity.NewTransaction(userID, entity.TransactionTypeExpense,
			decimal.NewFromInt(1000), entity.CurrencyARS, "Comida", "", time.Now(), "")
		repo.byID[tx.ID] = tx

		uc := NewDeleteTransactionUseCase(repo)
		if err := uc.Execute(context.Background(), DeleteTransactionInput{UserID: userID, TransactionID: tx.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deleted) != 1 {
			t.Errorf("expected 1 deletion, got %d", len(repo.deleted))
		}
	})

	t.Run("rejects another user's transaction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		tx := entity.NewTransaction(uuid.New(), entity.TransactionTypeExpense,
			decimal.NewFromInt(1000), entity.CurrencyARS, "Comida", "", time.Now(), "")
		repo.byID[tx.ID] = tx

		uc := NewDeleteTransactionUseCase(repo)
		err := uc.Execute(context.Background(), DeleteTransactionInput{UserID: uuid.New(), TransactionID: tx.ID})
		if !errors.Is(err, domainerror.ErrUnauthorizedTransaction) {
			t.Errorf("expected ErrUnauthorizedTransaction, got %v", err)
		}
		if len(repo.deleted) != 0 {
			t.Error("expected no deletion")
		}
	})

	t.Run("missing transaction is not found", func(t *testing.T) {
		uc := NewDeleteTransactionUseCase(newFakeTransactionRepo())
		err := uc.Execute(context.Background(), DeleteTransactionInput{UserID: uuid.New(), TransactionID: uuid.New()})

		var txErr *domainerror.TransactionError
		if !errors.As(err, &txErr) || txErr.Code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected TXN not found error, got %v", err)
		}
	})
}

func TestListTransactionsUseCase_Execute(t *testing.T) {
	t.Run("pagination defaults apply", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)

		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Page != 1 || output.Limit != defaultPageSize {
			t.Errorf("expected page 1 limit %d, got page %d limit %d",
				defaultPageSize, output.Page, output.Limit)
		}
	})

	t.Run("oversized limits are clamped", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)

		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: uuid.New(), Limit: 10000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Limit != maxPageSize {
			t.Errorf("expected limit %d, got %d", maxPageSize, output.Limit)
		}
	})

	t.Run("filters pass through to the repository", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)
		expenseType := entity.TransactionTypeExpense

		_, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserID:   uuid.New(),
			Type:     &expenseType,
			Category: "Comida",
			Search:   "super",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listInput.Category != "Comida" || repo.listInput.Search != "super" {
			t.Errorf("filter did not reach the repository: %+v", repo.listInput)
		}
	})
}
