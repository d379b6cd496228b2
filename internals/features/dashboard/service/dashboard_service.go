package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	enrollmentModel "ecole_backend/internals/features/academics/enrollments/model"
	"ecole_backend/internals/features/dashboard/dto"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
	helper "ecole_backend/internals/helpers"
)

const (
	MonthWindow = 6
	RecentCount = 7
)

type StudentCounter interface {
	CountStudents(ctx context.Context) helper.CountResult
}

type ClassCounter interface {
	CountClasses(ctx context.Context) helper.CountResult
}

type PaymentStats interface {
	TotalAmount(ctx context.Context) helper.TotalResult
	CountPending(ctx context.Context) helper.CountResult
	Monthly(ctx context.Context, start, end time.Time) helper.Result[[]paymentModel.MonthlyTotal]
}

type RecentEnrollments interface {
	Recent(ctx context.Context, limit int) helper.Result[[]enrollmentModel.EnrollmentModel]
}

type DashboardService struct {
	Students    StudentCounter
	Classes     ClassCounter
	Payments    PaymentStats
	Enrollments RecentEnrollments
	Now         func() time.Time
}

// Summary loads every card in parallel. A failing source never fails the
// whole dashboard: its card keeps the zero value and the message is
// reported under Errors.
func (s *DashboardService) Summary(ctx context.Context) dto.Summary {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	start, end := Window(now)

	out := dto.Summary{
		MonthlyPaiements:   FillMonths(nil, start, MonthWindow),
		RecentInscriptions: []enrollmentModel.EnrollmentModel{},
	}
	var mu sync.Mutex
	fail := func(card, msg string) {
		log.Printf("[DASHBOARD] %s: %s", card, msg)
		mu.Lock()
		defer mu.Unlock()
		if out.Errors == nil {
			out.Errors = map[string]string{}
		}
		out.Errors[card] = msg
	}

	// sources report failures in their envelope, so g.Wait never errors
	var g errgroup.Group
	g.Go(func() error {
		if r := s.Students.CountStudents(ctx); r.Success {
			out.TotalEleves = r.Count
		} else {
			fail(dto.CardStudents, r.Error)
		}
		return nil
	})
	g.Go(func() error {
		if r := s.Classes.CountClasses(ctx); r.Success {
			out.TotalClasses = r.Count
		} else {
			fail(dto.CardClasses, r.Error)
		}
		return nil
	})
	g.Go(func() error {
		if r := s.Payments.TotalAmount(ctx); r.Success {
			out.TotalPaiements = r.Total
		} else {
			fail(dto.CardPayments, r.Error)
		}
		return nil
	})
	g.Go(func() error {
		if r := s.Payments.CountPending(ctx); r.Success {
			out.PendingPaiements = r.Count
		} else {
			fail(dto.CardPending, r.Error)
		}
		return nil
	})
	g.Go(func() error {
		if r := s.Payments.Monthly(ctx, start, end); r.Success {
			out.MonthlyPaiements = FillMonths(r.Data, start, MonthWindow)
		} else {
			fail(dto.CardMonthly, r.Error)
		}
		return nil
	})
	g.Go(func() error {
		if r := s.Enrollments.Recent(ctx, RecentCount); r.Success {
			out.RecentInscriptions = r.Data
		} else {
			fail(dto.CardEnrollments, r.Error)
		}
		return nil
	})
	_ = g.Wait()
	return out
}

// Window returns the first day of the month five months before now, and
// now's date.
func Window(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m-(MonthWindow-1), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, end
}

// FillMonths returns one entry per month from start, taking totals from
// rows and 0 for months that have none.
func FillMonths(rows []paymentModel.MonthlyTotal, start time.Time, months int) []paymentModel.MonthlyTotal {
	byMonth := make(map[string]float64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.TotalAmount
	}
	out := make([]paymentModel.MonthlyTotal, 0, months)
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, paymentModel.MonthlyTotal{Month: key, TotalAmount: byMonth[key]})
	}
	return out
}
