package dto

import (
	"ecole_backend/internals/features/academics/school_years/model"
	"ecole_backend/internals/helpers/dbtime"
)

// Dates travel as "YYYY-MM-DD" strings; the format is checked by the
// validator, the ordering by CrossCheck.
type SchoolYearForm struct {
	Libelle   string `json:"libelle"   validate:"required,min=2"`
	Status    string `json:"status"    validate:"required,oneof='en cours' terminé"`
	DateDebut string `json:"datedebut" validate:"required,datetime=2006-01-02"`
	DateFin   string `json:"datefin"   validate:"required,datetime=2006-01-02"`
}

var Messages = map[string]string{
	"libelle.required":   "Le libellé est requis.",
	"libelle.min":        "Le libellé doit contenir au moins 2 caractères.",
	"status.required":    "Le statut est requis.",
	"status.oneof":       "Le statut doit être 'en cours' ou 'terminé'.",
	"datedebut.required": "La date de début est requise.",
	"datedebut.datetime": "La date de début doit être au format AAAA-MM-JJ.",
	"datefin.required":   "La date de fin est requise.",
	"datefin.datetime":   "La date de fin doit être au format AAAA-MM-JJ.",
}

func (f *SchoolYearForm) CrossCheck() map[string]string {
	// same layout on both sides, so lexical order is date order
	if f.DateFin < f.DateDebut {
		return map[string]string{"datefin": "La date de fin doit être postérieure ou égale à la date de début."}
	}
	return nil
}

func (f *SchoolYearForm) dates() (dbtime.Date, dbtime.Date) {
	// validated upstream
	debut, _ := dbtime.ParseDate(f.DateDebut)
	fin, _ := dbtime.ParseDate(f.DateFin)
	return debut, fin
}

func (f *SchoolYearForm) ToModel() model.SchoolYearModel {
	debut, fin := f.dates()
	return model.SchoolYearModel{Libelle: f.Libelle, Status: f.Status, DateDebut: debut, DateFin: fin}
}

func (f *SchoolYearForm) Patch() map[string]any {
	debut, fin := f.dates()
	return map[string]any{
		"libelle":   f.Libelle,
		"status":    f.Status,
		"datedebut": debut,
		"datefin":   fin,
	}
}
