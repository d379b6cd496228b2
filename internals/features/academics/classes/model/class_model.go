package model

import (
	"strings"

	"gorm.io/gorm"

	optionModel "ecole_backend/internals/features/academics/options/model"
)

type ClassModel struct {
	IDClasse  int64   `gorm:"column:idclasse;primaryKey;autoIncrement" json:"idclasse"`
	NomClasse string  `gorm:"column:nomclasse;type:text;not null" json:"nomclasse"`
	Niveau    *string `gorm:"column:niveau;type:text" json:"niveau"`
	IDOption  int64   `gorm:"column:idoption;not null" json:"idoption"`

	Option *optionModel.OptionModel `gorm:"foreignKey:IDOption;references:IDOption;constraint:OnDelete:RESTRICT" json:"option,omitempty"`
}

func (ClassModel) TableName() string { return "classe" }

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.NomClasse = strings.TrimSpace(m.NomClasse)
	if m.Niveau != nil {
		if v := strings.TrimSpace(*m.Niveau); v == "" {
			m.Niveau = nil
		} else {
			m.Niveau = &v
		}
	}
	return nil
}
