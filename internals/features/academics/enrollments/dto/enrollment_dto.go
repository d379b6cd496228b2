package dto

import (
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/academics/enrollments/model"
)

type EnrollmentForm struct {
	IDEleve         null.Int64 `json:"ideleve"         validate:"required,gt=0"`
	IDClasse        null.Int64 `json:"idclasse"        validate:"required,gt=0"`
	IDAnneeScolaire null.Int64 `json:"idanneescolaire" validate:"required,gt=0"`
	DateInscription null.Time  `json:"dateinscription"`
}

var Messages = map[string]string{
	"ideleve.required":         "Veuillez sélectionner un élève.",
	"ideleve.gt":               "Veuillez sélectionner un élève.",
	"idclasse.required":        "Veuillez sélectionner une classe.",
	"idclasse.gt":              "Veuillez sélectionner une classe.",
	"idanneescolaire.required": "Veuillez sélectionner une année scolaire.",
	"idanneescolaire.gt":       "Veuillez sélectionner une année scolaire.",
}

func (f *EnrollmentForm) Key() model.Key {
	return model.Key{
		IDEleve:         f.IDEleve.Int64,
		IDClasse:        f.IDClasse.Int64,
		IDAnneeScolaire: f.IDAnneeScolaire.Int64,
	}
}

func (f *EnrollmentForm) ToModel() model.EnrollmentModel {
	m := model.EnrollmentModel{
		IDEleve:         f.IDEleve.Int64,
		IDClasse:        f.IDClasse.Int64,
		IDAnneeScolaire: f.IDAnneeScolaire.Int64,
	}
	if f.DateInscription.Valid {
		m.DateInscription = f.DateInscription.Time
	}
	return m
}

// Patch only ever touches the enrollment date; the key is immutable.
func (f *EnrollmentForm) Patch() map[string]any {
	if !f.DateInscription.Valid {
		return map[string]any{}
	}
	return map[string]any{"dateinscription": f.DateInscription.Time}
}
