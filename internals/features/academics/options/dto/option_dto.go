package dto

import (
	"ecole_backend/internals/features/academics/options/model"
)

type OptionForm struct {
	NomOption   string `json:"nomoption"   validate:"required,min=2"`
	Abreviation string `json:"abreviation" validate:"required,min=1"`
}

var Messages = map[string]string{
	"nomoption.required":   "Le nom de l'option est requis.",
	"nomoption.min":        "Le nom de l'option doit contenir au moins 2 caractères.",
	"abreviation.required": "L'abréviation est requise.",
	"abreviation.min":      "L'abréviation est requise.",
}

func (f *OptionForm) ToModel() model.OptionModel {
	return model.OptionModel{NomOption: f.NomOption, Abreviation: f.Abreviation}
}

// Patch lists the columns an edit form writes.
func (f *OptionForm) Patch() map[string]any {
	return map[string]any{
		"nomoption":   f.NomOption,
		"abreviation": f.Abreviation,
	}
}
