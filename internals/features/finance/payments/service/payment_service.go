package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ecole_backend/internals/features/finance/payments/dto"
	"ecole_backend/internals/features/finance/payments/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

const missingMonthlyFunc = "La fonction SQL 'get_monthly_payments' n'existe pas. " +
	"Appliquez les migrations de la base de données."

type PaymentService struct {
	*crud.Access[model.PaymentModel]
}

func NewPaymentService(db *gorm.DB, inv crud.Invalidator) *PaymentService {
	return &PaymentService{crud.New(db, crud.Config[model.PaymentModel]{
		Entity:   revalidate.EntityPayment,
		Keys:     []string{"idpaiement"},
		KeyOf:    func(m *model.PaymentModel) []any { return []any{m.IDPaiement} },
		Order:    crud.Desc("datepaiement"),
		Preloads: []string{"Eleve", "Frais"},
		NotFound: "Paiement non trouvé.",
		Singular: "du paiement",
		Plural:   "des paiements",
	}, inv)}
}

func (s *PaymentService) CreateForm(ctx context.Context, f *dto.PaymentForm) helper.Result[model.PaymentModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *PaymentService) UpdateForm(ctx context.Context, id int64, f *dto.PaymentForm) helper.Result[model.PaymentModel] {
	return s.Update(ctx, f.Patch(), id)
}

// TotalAmount sums every payment server-side.
func (s *PaymentService) TotalAmount(ctx context.Context) helper.TotalResult {
	return helper.ToTotal(s.Sum(ctx, "montantpayer"))
}

func (s *PaymentService) CountPending(ctx context.Context) helper.CountResult {
	return helper.ToCount(s.Count(ctx, byStatus(model.StatusPending)))
}

// Monthly returns the per-month totals between start and end (inclusive)
// as computed by get_monthly_payments. Months without payments are absent.
func (s *PaymentService) Monthly(ctx context.Context, start, end time.Time) (res helper.Result[[]model.MonthlyTotal]) {
	const op = "la récupération des paiements mensuels"
	defer helper.Guard(&res, op)

	rows := make([]model.MonthlyTotal, 0, 6)
	err := s.DB().WithContext(ctx).
		Raw("SELECT * FROM get_monthly_payments(?, ?)", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return monthlyError(op, err)
	}
	return helper.Ok(rows)
}

func monthlyError(op string, err error) helper.Result[[]model.MonthlyTotal] {
	if helper.PGCode(err) == helper.SQLStateUndefinedFunction {
		r := helper.Fail[[]model.MonthlyTotal](helper.KindRemote, missingMonthlyFunc)
		r.Code = helper.SQLStateUndefinedFunction
		return r
	}
	return helper.FromError[[]model.MonthlyTotal](op, "", err)
}

// ListForParent returns the payments made for the parent's children,
// newest first.
func (s *PaymentService) ListForParent(ctx context.Context, parentID int64) helper.Result[[]model.PaymentModel] {
	return s.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("ideleve IN (SELECT ideleve FROM eleve WHERE idparent = ?)", parentID)
	})
}

func (s *PaymentService) ListByStatus(ctx context.Context, status string) helper.Result[[]model.PaymentModel] {
	return s.List(ctx, byStatus(status))
}

func byStatus(status string) crud.Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", status) }
}
