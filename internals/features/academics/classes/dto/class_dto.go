package dto

import (
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/academics/classes/model"
	"ecole_backend/internals/helpers/form"
)

type ClassForm struct {
	NomClasse string      `json:"nomclasse" validate:"required,min=2"`
	Niveau    null.String `json:"niveau"`
	IDOption  null.Int64  `json:"idoption"  validate:"required,gt=0"`
}

var Messages = map[string]string{
	"nomclasse.required": "Le nom de la classe est requis.",
	"nomclasse.min":      "Le nom de la classe doit contenir au moins 2 caractères.",
	"idoption.required":  "Veuillez sélectionner une option.",
	"idoption.gt":        "Veuillez sélectionner une option.",
}

func (f *ClassForm) ToModel() model.ClassModel {
	return model.ClassModel{
		NomClasse: f.NomClasse,
		Niveau:    form.StringPtr(f.Niveau),
		IDOption:  f.IDOption.Int64,
	}
}

func (f *ClassForm) Patch() map[string]any {
	return map[string]any{
		"nomclasse": f.NomClasse,
		"niveau":    form.StringPtr(f.Niveau),
		"idoption":  f.IDOption.Int64,
	}
}
