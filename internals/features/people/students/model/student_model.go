package model

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	parentModel "ecole_backend/internals/features/people/parents/model"
	"ecole_backend/internals/helpers/dbtime"
)

const (
	StatusOngoing   = "en cours"
	StatusFinished  = "terminé"
	StatusSuspended = "suspendu"
	StatusExpelled  = "renvoyé"
)

var Statuses = []string{StatusOngoing, StatusFinished, StatusSuspended, StatusExpelled}

type StudentModel struct {
	IDEleve        int64       `gorm:"column:ideleve;primaryKey;autoIncrement" json:"ideleve"`
	Nom            string      `gorm:"column:nom;type:text;not null" json:"nom"`
	PostNom        string      `gorm:"column:postnom;type:text;not null" json:"postnom"`
	Prenom         *string     `gorm:"column:prenom;type:text" json:"prenom"`
	DateNaissance  dbtime.Date `gorm:"column:datenaissance;type:date" json:"datenaissance"`
	LieuNaissance  *string     `gorm:"column:lieunaissance;type:text" json:"lieunaissance"`
	Adresse        *string     `gorm:"column:adresse;type:text" json:"adresse"`
	MoyenTransport *string     `gorm:"column:moyentransport;type:text" json:"moyentransport"`
	Status         string      `gorm:"column:status;type:text;not null;default:'en cours'" json:"status"`
	Photo          *string     `gorm:"column:photo;type:text" json:"photo"`
	IDParent       *int64      `gorm:"column:idparent;index" json:"idparent"`

	Parent *parentModel.ParentModel `gorm:"foreignKey:IDParent;references:IDParent;constraint:OnDelete:RESTRICT" json:"parent,omitempty"`
}

func (StudentModel) TableName() string { return "eleve" }

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.Nom = strings.TrimSpace(m.Nom)
	m.PostNom = strings.TrimSpace(m.PostNom)
	if m.Status != "" && !ValidStatus(m.Status) {
		return errors.New("status élève invalide")
	}
	return nil
}

func (m *StudentModel) FullName() string {
	parts := []string{m.Nom, m.PostNom}
	if m.Prenom != nil && *m.Prenom != "" {
		parts = append(parts, *m.Prenom)
	}
	return strings.Join(parts, " ")
}
