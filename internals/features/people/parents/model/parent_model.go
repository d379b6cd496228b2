package model

import (
	"strings"

	"gorm.io/gorm"
)

type ParentModel struct {
	IDParent       int64   `gorm:"column:idparent;primaryKey;autoIncrement" json:"idparent"`
	NomPere        string  `gorm:"column:nompere;type:text;not null" json:"nompere"`
	NomMere        string  `gorm:"column:nommere;type:text;not null" json:"nommere"`
	Adresse        *string `gorm:"column:adresse;type:text" json:"adresse"`
	EmailPere      *string `gorm:"column:emailpere;type:text" json:"emailpere"`
	EmailMere      *string `gorm:"column:emailmere;type:text" json:"emailmere"`
	ProfessionPere *string `gorm:"column:professionpere;type:text" json:"professionpere"`
	ProfessionMere *string `gorm:"column:professionmere;type:text" json:"professionmere"`
	TelephonePere  *string `gorm:"column:telephonepere;type:text" json:"telephonepere"`
	TelephoneMere  *string `gorm:"column:telephonemere;type:text" json:"telephonemere"`
}

func (ParentModel) TableName() string { return "parent" }

func (m *ParentModel) BeforeSave(tx *gorm.DB) error {
	m.Normalize()
	return nil
}

// Normalize trims names and lower-cases emails; blank emails become NULL.
func (m *ParentModel) Normalize() {
	m.NomPere = strings.TrimSpace(m.NomPere)
	m.NomMere = strings.TrimSpace(m.NomMere)
	for _, p := range []**string{&m.EmailPere, &m.EmailMere} {
		if *p != nil {
			v := strings.ToLower(strings.TrimSpace(**p))
			if v == "" {
				*p = nil
			} else {
				*p = &v
			}
		}
	}
}

// DisplayName is how the portal greets the account holder.
func (m *ParentModel) DisplayName() string {
	switch {
	case m.NomPere != "":
		return "Mr. " + m.NomPere
	case m.NomMere != "":
		return "Mme. " + m.NomMere
	default:
		return "Parent"
	}
}
