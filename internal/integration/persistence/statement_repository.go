package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/persistence/model"
)

// statementRepository implements the adapter.StatementRepository interface.
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository instance.
func NewStatementRepository(db *gorm.DB) adapter.StatementRepository {
	return &statementRepository{
		db: db,
	}
}

// Create persists a statement import with its items and reconciliation
// report atomically.
func (r *statementRepository) Create(ctx context.Context, statement *entity.StatementImport, items []*entity.StatementItem, report *valueobject.ReconciliationReport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statementModel := model.StatementImportFromEntity(statement, report)
		if err := tx.Create(statementModel).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		itemModels := make([]*model.StatementItemModel, len(items))
		for i, item := range items {
			itemModels[i] = model.StatementItemFromEntity(item)
		}
		return tx.CreateInBatches(itemModels, 100).Error
	})
}

// FindByID retrieves a statement import by its ID.
func (r *statementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StatementImport, error) {
	var statementModel model.StatementImportModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.ToEntity(), nil
}

// FindByMonth retrieves a user's statement import for a billing month.
func (r *statementRepository) FindByMonth(ctx context.Context, userID uuid.UUID, statementMonth time.Time) (*entity.StatementImport, error) {
	var statementModel model.StatementImportModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("statement_month = ?", statementMonth).
		First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.ToEntity(), nil
}

// ListByUser retrieves a user's statement imports since the given month.
func (r *statementRepository) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*entity.StatementImport, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("statement_month DESC")
	if !since.IsZero() {
		query = query.Where("statement_month >= ?", since)
	}

	var statementModels []model.StatementImportModel
	if err := query.Find(&statementModels).Error; err != nil {
		return nil, err
	}

	statements := make([]*entity.StatementImport, len(statementModels))
	for i, sm := range statementModels {
		statements[i] = sm.ToEntity()
	}
	return statements, nil
}

// FindItems retrieves the items of the given statement imports.
func (r *statementRepository) FindItems(ctx context.Context, statementIDs []uuid.UUID) ([]*entity.StatementItem, error) {
	if len(statementIDs) == 0 {
		return nil, nil
	}

	var itemModels []model.StatementItemModel
	result := r.db.WithContext(ctx).
		Where("statement_import_id IN ?", statementIDs).
		Order("date ASC, id ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.StatementItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}

// FindReport retrieves the stored reconciliation report of a statement.
func (r *statementRepository) FindReport(ctx context.Context, statementID uuid.UUID) (*valueobject.ReconciliationReport, error) {
	var statementModel model.StatementImportModel
	result := r.db.WithContext(ctx).
		Select("id", "reconciliation").
		Where("id = ?", statementID).
		First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.Report(), nil
}

// ListCompletedWithReports retrieves completed imports with their stored
// reports, most recent first.
func (r *statementRepository) ListCompletedWithReports(ctx context.Context, limit int) ([]*adapter.StatementWithReport, error) {
	var statementModels []model.StatementImportModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.StatementStatusCompleted)).
		Order("statement_month DESC").
		Limit(limit).
		Find(&statementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	withReports := make([]*adapter.StatementWithReport, len(statementModels))
	for i := range statementModels {
		withReports[i] = &adapter.StatementWithReport{
			Statement: statementModels[i].ToEntity(),
			Report:    statementModels[i].Report(),
		}
	}
	return withReports, nil
}
