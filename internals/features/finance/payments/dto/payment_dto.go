package dto

import (
	"github.com/volatiletech/null/v8"

	feeModel "ecole_backend/internals/features/finance/fees/model"
	"ecole_backend/internals/features/finance/payments/model"
	"ecole_backend/internals/helpers/form"
)

type PaymentForm struct {
	MontantPayer float64    `json:"montantpayer" validate:"required,gte=0.01"`
	DatePaiement null.Time  `json:"datepaiement"`
	Status       string     `json:"status"       validate:"required,oneof=pending processing success failed"`
	IDEleve      null.Int64 `json:"ideleve"      validate:"omitempty,gt=0"`
	IDFrais      null.Int64 `json:"idfrais"      validate:"omitempty,gt=0"`
}

var Messages = map[string]string{
	"montantpayer.required": "Le montant payé est requis.",
	"montantpayer.gte":      "Le montant payé doit être supérieur à 0.",
	"status.required":       "Le statut est requis.",
	"status.oneof":          "Statut de paiement invalide.",
	"ideleve.gt":            "Élève invalide.",
	"idfrais.gt":            "Frais invalide.",
}

func (f *PaymentForm) Normalize() {
	f.MontantPayer = feeModel.RoundAmount(f.MontantPayer)
	if f.Status == "" {
		f.Status = model.StatusPending
	}
}

func (f *PaymentForm) ToModel() model.PaymentModel {
	m := model.PaymentModel{
		MontantPayer: f.MontantPayer,
		Status:       f.Status,
		IDEleve:      form.Int64Ptr(f.IDEleve),
		IDFrais:      form.Int64Ptr(f.IDFrais),
	}
	if f.DatePaiement.Valid {
		m.DatePaiement = f.DatePaiement.Time
	}
	return m
}

func (f *PaymentForm) Patch() map[string]any {
	p := map[string]any{
		"montantpayer": f.MontantPayer,
		"status":       f.Status,
		"ideleve":      form.Int64Ptr(f.IDEleve),
		"idfrais":      form.Int64Ptr(f.IDFrais),
	}
	if f.DatePaiement.Valid {
		p["datepaiement"] = f.DatePaiement.Time
	}
	return p
}
