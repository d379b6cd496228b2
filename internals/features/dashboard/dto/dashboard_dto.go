package dto

import (
	enrollmentModel "ecole_backend/internals/features/academics/enrollments/model"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
)

// Card keys, also used in Summary.Errors.
const (
	CardStudents    = "totalEleves"
	CardClasses     = "totalClasses"
	CardPayments    = "totalPaiements"
	CardPending     = "pendingPaiements"
	CardMonthly     = "monthlyPaiements"
	CardEnrollments = "recentInscriptions"
)

type Summary struct {
	TotalEleves        int64                             `json:"totalEleves"`
	TotalClasses       int64                             `json:"totalClasses"`
	TotalPaiements     float64                           `json:"totalPaiements"`
	PendingPaiements   int64                             `json:"pendingPaiements"`
	MonthlyPaiements   []paymentModel.MonthlyTotal       `json:"monthlyPaiements"`
	RecentInscriptions []enrollmentModel.EnrollmentModel `json:"recentInscriptions"`

	// Errors holds the message of every card that fell back to its default.
	Errors map[string]string `json:"errors,omitempty"`
}
