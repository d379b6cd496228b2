package dto

import (
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/people/parents/model"
	"ecole_backend/internals/helpers/form"
)

type ParentForm struct {
	NomPere        string      `json:"nompere"        validate:"required,min=2"`
	NomMere        string      `json:"nommere"        validate:"required,min=2"`
	Adresse        null.String `json:"adresse"`
	EmailPere      null.String `json:"emailpere"      validate:"omitempty,email"`
	EmailMere      null.String `json:"emailmere"      validate:"omitempty,email"`
	ProfessionPere null.String `json:"professionpere"`
	ProfessionMere null.String `json:"professionmere"`
	TelephonePere  null.String `json:"telephonepere"`
	TelephoneMere  null.String `json:"telephonemere"`
}

var Messages = map[string]string{
	"nompere.required": "Le nom du père est requis.",
	"nompere.min":      "Le nom du père doit contenir au moins 2 caractères.",
	"nommere.required": "Le nom de la mère est requis.",
	"nommere.min":      "Le nom de la mère doit contenir au moins 2 caractères.",
	"emailpere.email":  "L'email du père n'est pas valide.",
	"emailmere.email":  "L'email de la mère n'est pas valide.",
}

func (f *ParentForm) ToModel() model.ParentModel {
	return model.ParentModel{
		NomPere:        f.NomPere,
		NomMere:        f.NomMere,
		Adresse:        form.StringPtr(f.Adresse),
		EmailPere:      form.StringPtr(f.EmailPere),
		EmailMere:      form.StringPtr(f.EmailMere),
		ProfessionPere: form.StringPtr(f.ProfessionPere),
		ProfessionMere: form.StringPtr(f.ProfessionMere),
		TelephonePere:  form.StringPtr(f.TelephonePere),
		TelephoneMere:  form.StringPtr(f.TelephoneMere),
	}
}

func (f *ParentForm) Patch() map[string]any {
	m := f.ToModel()
	m.Normalize()
	return map[string]any{
		"nompere":        m.NomPere,
		"nommere":        m.NomMere,
		"adresse":        m.Adresse,
		"emailpere":      m.EmailPere,
		"emailmere":      m.EmailMere,
		"professionpere": m.ProfessionPere,
		"professionmere": m.ProfessionMere,
		"telephonepere":  m.TelephonePere,
		"telephonemere":  m.TelephoneMere,
	}
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}
