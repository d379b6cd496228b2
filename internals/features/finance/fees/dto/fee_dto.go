package dto

import (
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/finance/fees/model"
	"ecole_backend/internals/helpers/dbtime"
	"ecole_backend/internals/helpers/form"
)

type FeeForm struct {
	Description     string      `json:"description"     validate:"required,min=5"`
	MontantTotal    float64     `json:"montanttotal"    validate:"required,gte=0.01"`
	DateEcheance    null.String `json:"dateecheance"    validate:"omitempty,datetime=2006-01-02"`
	IDAnneeScolaire null.Int64  `json:"idanneescolaire" validate:"omitempty,gt=0"`
}

var Messages = map[string]string{
	"description.required":  "La description est requise.",
	"description.min":       "La description doit contenir au moins 5 caractères.",
	"montanttotal.required": "Le montant total est requis.",
	"montanttotal.gte":      "Le montant total doit être supérieur à 0.",
	"dateecheance.datetime": "La date d'échéance doit être au format AAAA-MM-JJ.",
	"idanneescolaire.gt":    "Année scolaire invalide.",
}

func (f *FeeForm) Normalize() {
	f.MontantTotal = model.RoundAmount(f.MontantTotal)
}

func (f *FeeForm) dueDate() dbtime.Date {
	if !f.DateEcheance.Valid {
		return dbtime.Date{}
	}
	d, _ := dbtime.ParseDate(f.DateEcheance.String)
	return d
}

func (f *FeeForm) ToModel() model.FeeModel {
	return model.FeeModel{
		Description:     f.Description,
		MontantTotal:    f.MontantTotal,
		DateEcheance:    f.dueDate(),
		IDAnneeScolaire: form.Int64Ptr(f.IDAnneeScolaire),
	}
}

func (f *FeeForm) Patch() map[string]any {
	return map[string]any{
		"description":     f.Description,
		"montanttotal":    f.MontantTotal,
		"dateecheance":    f.dueDate(),
		"idanneescolaire": form.Int64Ptr(f.IDAnneeScolaire),
	}
}
