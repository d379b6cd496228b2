package model

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"ecole_backend/internals/helpers/dbtime"
)

const (
	StatusOngoing  = "en cours"
	StatusFinished = "terminé"
)

type SchoolYearModel struct {
	IDAnneeScolaire int64       `gorm:"column:idanneescolaire;primaryKey;autoIncrement" json:"idanneescolaire"`
	Libelle         string      `gorm:"column:libelle;type:text;not null" json:"libelle"`
	Status          string      `gorm:"column:status;type:text;not null" json:"status"`
	DateDebut       dbtime.Date `gorm:"column:datedebut;type:date;not null" json:"datedebut"`
	DateFin         dbtime.Date `gorm:"column:datefin;type:date;not null" json:"datefin"`
}

func (SchoolYearModel) TableName() string { return "anneescolaire" }

// BeforeSave mirrors the table CHECKs. Zero fields are skipped: partial
// updates run this hook on an empty model.
func (m *SchoolYearModel) BeforeSave(tx *gorm.DB) error {
	m.Libelle = strings.TrimSpace(m.Libelle)
	if m.Status != "" && m.Status != StatusOngoing && m.Status != StatusFinished {
		return errors.New("status doit être 'en cours' ou 'terminé'")
	}
	if !m.DateDebut.IsZero() && !m.DateFin.IsZero() && m.DateFin.Before(m.DateDebut.Time) {
		return errors.New("datefin doit être >= datedebut")
	}
	return nil
}
