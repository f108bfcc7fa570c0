package insights

import (
	"time"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// StatementRecord pairs a completed statement import with its itemized lines.
type StatementRecord struct {
	Import *entity.StatementImport
	Items  []*entity.StatementItem
}

// AnalysisInput is everything one analysis run looks at. Now is injected so
// that runs are reproducible and projection logic is testable.
type AnalysisInput struct {
	Transactions []*entity.Transaction
	Statements   []StatementRecord
	Now          time.Time
}

// TotalStatementItems counts the itemized lines across all statements.
func (in AnalysisInput) TotalStatementItems() int {
	total := 0
	for _, s := range in.Statements {
		total += len(s.Items)
	}
	return total
}

// BuildCashflowView aggregates expense transactions by the month the money
// moved. Card payment transactions are included as-is: in this view the card
// bill is the movement, not its itemized contents.
func BuildCashflowView(input AnalysisInput, conv *converter) (valueobject.MonthlyView, error) {
	view := valueobject.MonthlyView{}
	for _, tx := range input.Transactions {
		if tx.Type != entity.TransactionTypeExpense {
			continue
		}
		amount, err := conv.Normalize(tx.Amount, tx.Currency)
		if err != nil {
			return nil, err
		}
		month := valueobject.MonthKey(tx.Date)
		agg, ok := view[month]
		if !ok {
			agg = valueobject.NewMonthlyAggregate(month)
			view[month] = agg
		}
		agg.Add(tx.Category, amount)
	}
	return view, nil
}

// BuildConsumptionView aggregates what was actually consumed: expense
// transactions except card payments, plus the itemized consumption and
// installment lines of imported statements. Statement lines are attributed to
// the statement's payment month, one month after the billing month, so
// consumption matches when the bill is settled. Negative lines (refunds,
// bonifications) subtract.
func BuildConsumptionView(input AnalysisInput, conv *converter) (valueobject.MonthlyView, error) {
	view := valueobject.MonthlyView{}
	bucket := func(month string) *valueobject.MonthlyAggregate {
		agg, ok := view[month]
		if !ok {
			agg = valueobject.NewMonthlyAggregate(month)
			view[month] = agg
		}
		return agg
	}

	for _, tx := range input.Transactions {
		if tx.Type != entity.TransactionTypeExpense || tx.IsCardPayment() {
			continue
		}
		amount, err := conv.Normalize(tx.Amount, tx.Currency)
		if err != nil {
			return nil, err
		}
		bucket(valueobject.MonthKey(tx.Date)).Add(tx.Category, amount)
	}

	for _, record := range input.Statements {
		month := valueobject.MonthKey(record.Import.PaymentMonth())
		for _, item := range record.Items {
			if item.Kind != entity.ItemKindConsumption && item.Kind != entity.ItemKindInstallment {
				continue
			}
			amount, err := conv.Normalize(item.Amount, item.Currency)
			if err != nil {
				return nil, err
			}
			category := item.CategoryName
			if category == "" {
				category = entity.UncategorizedName
			}
			bucket(month).AddCardConsumption(category, amount)
		}
	}
	return view, nil
}
