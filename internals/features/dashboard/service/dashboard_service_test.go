package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enrollmentModel "ecole_backend/internals/features/academics/enrollments/model"
	"ecole_backend/internals/features/dashboard/dto"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
	helper "ecole_backend/internals/helpers"
)

type fakeSources struct {
	failStudents bool
	failMonthly  bool
	recentLimit  atomic.Int64
	start, end   time.Time
}

func (f *fakeSources) CountStudents(context.Context) helper.CountResult {
	if f.failStudents {
		return helper.ToCount(helper.Fail[int64](helper.KindRemote, "Erreur lors du comptage des élèves : timeout"))
	}
	return helper.CountResult{Count: 42, Success: true}
}

func (f *fakeSources) CountClasses(context.Context) helper.CountResult {
	return helper.CountResult{Count: 6, Success: true}
}

func (f *fakeSources) TotalAmount(context.Context) helper.TotalResult {
	return helper.TotalResult{Total: 1250.5, Success: true}
}

func (f *fakeSources) CountPending(context.Context) helper.CountResult {
	return helper.CountResult{Count: 3, Success: true}
}

func (f *fakeSources) Monthly(_ context.Context, start, end time.Time) helper.Result[[]paymentModel.MonthlyTotal] {
	f.start, f.end = start, end
	if f.failMonthly {
		return helper.Fail[[]paymentModel.MonthlyTotal](helper.KindRemote, "La fonction SQL 'get_monthly_payments' n'existe pas.")
	}
	return helper.Ok([]paymentModel.MonthlyTotal{
		{Month: "2024-03", TotalAmount: 300},
		{Month: "2024-06", TotalAmount: 120.25},
	})
}

func (f *fakeSources) Recent(_ context.Context, limit int) helper.Result[[]enrollmentModel.EnrollmentModel] {
	f.recentLimit.Store(int64(limit))
	return helper.Ok([]enrollmentModel.EnrollmentModel{{IDEleve: 1, IDClasse: 2, IDAnneeScolaire: 3}})
}

func newDashboard(f *fakeSources) *DashboardService {
	return &DashboardService{
		Students: f, Classes: f, Payments: f, Enrollments: f,
		Now: func() time.Time { return time.Date(2024, 6, 18, 15, 4, 0, 0, time.UTC) },
	}
}

func TestSummaryFillsEveryCard(t *testing.T) {
	f := &fakeSources{}
	sum := newDashboard(f).Summary(context.Background())

	assert.Empty(t, sum.Errors)
	assert.Equal(t, int64(42), sum.TotalEleves)
	assert.Equal(t, int64(6), sum.TotalClasses)
	assert.Equal(t, 1250.5, sum.TotalPaiements)
	assert.Equal(t, int64(3), sum.PendingPaiements)
	assert.Len(t, sum.RecentInscriptions, 1)
	assert.Equal(t, int64(RecentCount), f.recentLimit.Load())

	assert.Equal(t, "2024-01-01", f.start.Format("2006-01-02"))
	assert.Equal(t, "2024-06-18", f.end.Format("2006-01-02"))

	require.Len(t, sum.MonthlyPaiements, MonthWindow)
	want := []paymentModel.MonthlyTotal{
		{Month: "2024-01"}, {Month: "2024-02"}, {Month: "2024-03", TotalAmount: 300},
		{Month: "2024-04"}, {Month: "2024-05"}, {Month: "2024-06", TotalAmount: 120.25},
	}
	assert.Equal(t, want, sum.MonthlyPaiements)
}

func TestSummaryDefaultsFailedCards(t *testing.T) {
	f := &fakeSources{failStudents: true, failMonthly: true}
	sum := newDashboard(f).Summary(context.Background())

	assert.Zero(t, sum.TotalEleves)
	assert.Equal(t, int64(6), sum.TotalClasses)
	require.Len(t, sum.Errors, 2)
	assert.Contains(t, sum.Errors[dto.CardStudents], "timeout")
	assert.Contains(t, sum.Errors[dto.CardMonthly], "get_monthly_payments")

	require.Len(t, sum.MonthlyPaiements, MonthWindow)
	for _, m := range sum.MonthlyPaiements {
		assert.Zero(t, m.TotalAmount)
	}
}

func TestWindowCrossesYear(t *testing.T) {
	start, end := Window(time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-09-01", start.Format("2006-01-02"))
	assert.Equal(t, "2025-02-10", end.Format("2006-01-02"))

	months := FillMonths(nil, start, MonthWindow)
	assert.Equal(t, "2024-09", months[0].Month)
	assert.Equal(t, "2025-02", months[5].Month)
}
