package model

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	yearModel "ecole_backend/internals/features/academics/school_years/model"
	"ecole_backend/internals/helpers/dbtime"
)

type FeeModel struct {
	IDFrais         int64       `gorm:"column:idfrais;primaryKey;autoIncrement" json:"idfrais"`
	Description     string      `gorm:"column:description;type:text;not null" json:"description"`
	MontantTotal    float64     `gorm:"column:montanttotal;type:numeric(10,2);not null" json:"montanttotal"`
	DateEcheance    dbtime.Date `gorm:"column:dateecheance" json:"dateecheance"`
	IDAnneeScolaire *int64      `gorm:"column:idanneescolaire" json:"idanneescolaire"`

	AnneeScolaire *yearModel.SchoolYearModel `gorm:"foreignKey:IDAnneeScolaire;references:IDAnneeScolaire;constraint:OnDelete:SET NULL" json:"anneescolaire,omitempty"`
}

func (FeeModel) TableName() string { return "frais" }

// RoundAmount keeps two decimals, as numeric(10,2) stores them.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

func (m *FeeModel) BeforeSave(tx *gorm.DB) error {
	m.Description = strings.TrimSpace(m.Description)
	m.MontantTotal = RoundAmount(m.MontantTotal)
	if m.MontantTotal < 0 {
		return errors.New("le montant total ne peut pas être négatif")
	}
	return nil
}
