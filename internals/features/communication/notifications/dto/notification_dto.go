package dto

import (
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/communication/notifications/model"
	"ecole_backend/internals/helpers/form"
)

// NotificationForm without idparent is sent to every parent.
type NotificationForm struct {
	Message   string     `json:"message"   validate:"required,min=5"`
	DateEnvoi null.Time  `json:"dateenvoi"`
	IDParent  null.Int64 `json:"idparent"  validate:"omitempty,gt=0"`
}

var Messages = map[string]string{
	"message.required": "Le message est requis.",
	"message.min":      "Le message doit contenir au moins 5 caractères.",
	"idparent.gt":      "Parent invalide.",
}

func (f *NotificationForm) ToModel() model.NotificationModel {
	m := model.NotificationModel{
		Message:  f.Message,
		IDParent: form.Int64Ptr(f.IDParent),
	}
	if f.DateEnvoi.Valid {
		m.DateEnvoi = f.DateEnvoi.Time
	}
	return m
}

func (f *NotificationForm) Patch() map[string]any {
	p := map[string]any{
		"message":  f.Message,
		"idparent": form.Int64Ptr(f.IDParent),
	}
	if f.DateEnvoi.Valid {
		p["dateenvoi"] = f.DateEnvoi.Time
	}
	return p
}
