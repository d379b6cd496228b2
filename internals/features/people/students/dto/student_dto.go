package dto

import (
	"io"

	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/people/students/model"
	"ecole_backend/internals/helpers/dbtime"
	"ecole_backend/internals/helpers/form"
)

// StudentForm arrives as the "payload" part of a multipart request; the
// optional picture is the "photo" part.
type StudentForm struct {
	Nom            string      `json:"nom"            validate:"required,min=2"`
	PostNom        string      `json:"postnom"        validate:"required,min=2"`
	Prenom         null.String `json:"prenom"`
	DateNaissance  null.String `json:"datenaissance"  validate:"omitempty,datetime=2006-01-02"`
	LieuNaissance  null.String `json:"lieunaissance"`
	Adresse        null.String `json:"adresse"`
	MoyenTransport null.String `json:"moyentransport"`
	Status         string      `json:"status"         validate:"required,oneof='en cours' terminé suspendu renvoyé"`
	IDParent       null.Int64  `json:"idparent"       validate:"omitempty,gt=0"`

	// DeleteExistingPhoto drops the current photo when no new file is sent.
	DeleteExistingPhoto bool `json:"deleteExistingPhoto"`

	Photo io.Reader `json:"-" validate:"-"`
}

var Messages = map[string]string{
	"nom.required":           "Le nom est requis.",
	"nom.min":                "Le nom doit contenir au moins 2 caractères.",
	"postnom.required":       "Le postnom est requis.",
	"postnom.min":            "Le postnom doit contenir au moins 2 caractères.",
	"datenaissance.datetime": "La date de naissance doit être au format AAAA-MM-JJ.",
	"status.required":        "Le statut est requis.",
	"status.oneof":           "Statut invalide.",
	"idparent.gt":            "Parent invalide.",
}

func (f *StudentForm) birthDate() dbtime.Date {
	if !f.DateNaissance.Valid {
		return dbtime.Date{}
	}
	d, _ := dbtime.ParseDate(f.DateNaissance.String)
	return d
}

func (f *StudentForm) ToModel() model.StudentModel {
	return model.StudentModel{
		Nom:            f.Nom,
		PostNom:        f.PostNom,
		Prenom:         form.StringPtr(f.Prenom),
		DateNaissance:  f.birthDate(),
		LieuNaissance:  form.StringPtr(f.LieuNaissance),
		Adresse:        form.StringPtr(f.Adresse),
		MoyenTransport: form.StringPtr(f.MoyenTransport),
		Status:         f.Status,
		IDParent:       form.Int64Ptr(f.IDParent),
	}
}

// Patch leaves the photo column out; the photo paths decide it.
func (f *StudentForm) Patch() map[string]any {
	return map[string]any{
		"nom":            f.Nom,
		"postnom":        f.PostNom,
		"prenom":         form.StringPtr(f.Prenom),
		"datenaissance":  f.birthDate(),
		"lieunaissance":  form.StringPtr(f.LieuNaissance),
		"adresse":        form.StringPtr(f.Adresse),
		"moyentransport": form.StringPtr(f.MoyenTransport),
		"status":         f.Status,
		"idparent":       form.Int64Ptr(f.IDParent),
	}
}

// ChildView is a student as the parent portal shows it, with the class of
// the latest enrollment flattened in.
type ChildView struct {
	model.StudentModel
	NomClasse *string `json:"nomclasse"`
	NomOption *string `json:"nomoption"`
}
