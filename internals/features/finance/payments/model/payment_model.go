package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	feeModel "ecole_backend/internals/features/finance/fees/model"
	studentModel "ecole_backend/internals/features/people/students/model"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

var Statuses = []string{StatusPending, StatusProcessing, StatusSuccess, StatusFailed}

type PaymentModel struct {
	IDPaiement   int64     `gorm:"column:idpaiement;primaryKey;autoIncrement" json:"idpaiement"`
	MontantPayer float64   `gorm:"column:montantpayer;type:numeric(10,2);not null" json:"montantpayer"`
	DatePaiement time.Time `gorm:"column:datepaiement;not null;autoCreateTime" json:"datepaiement"`
	Status       string    `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	IDEleve      *int64    `gorm:"column:ideleve" json:"ideleve"`
	IDFrais      *int64    `gorm:"column:idfrais" json:"idfrais"`

	Eleve *studentModel.StudentModel `gorm:"foreignKey:IDEleve;references:IDEleve;constraint:OnDelete:SET NULL" json:"eleve,omitempty"`
	Frais *feeModel.FeeModel         `gorm:"foreignKey:IDFrais;references:IDFrais;constraint:OnDelete:SET NULL" json:"frais,omitempty"`
}

func (PaymentModel) TableName() string { return "paiement" }

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (m *PaymentModel) BeforeSave(tx *gorm.DB) error {
	if m.Status != "" && !ValidStatus(m.Status) {
		return fmt.Errorf("statut de paiement invalide %q", m.Status)
	}
	m.MontantPayer = feeModel.RoundAmount(m.MontantPayer)
	return nil
}

// MonthlyTotal is one row of get_monthly_payments.
type MonthlyTotal struct {
	Month       string  `gorm:"column:month" json:"month"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`
}
