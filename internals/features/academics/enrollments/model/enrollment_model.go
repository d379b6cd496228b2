package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	classModel "ecole_backend/internals/features/academics/classes/model"
	yearModel "ecole_backend/internals/features/academics/school_years/model"
	studentModel "ecole_backend/internals/features/people/students/model"
)

// EnrollmentModel links a student to a class for one school year. The
// three ids form the key and never change after creation.
type EnrollmentModel struct {
	IDEleve         int64     `gorm:"column:ideleve;primaryKey;autoIncrement:false" json:"ideleve"`
	IDClasse        int64     `gorm:"column:idclasse;primaryKey;autoIncrement:false" json:"idclasse"`
	IDAnneeScolaire int64     `gorm:"column:idanneescolaire;primaryKey;autoIncrement:false" json:"idanneescolaire"`
	DateInscription time.Time `gorm:"column:dateinscription;not null;autoCreateTime" json:"dateinscription"`

	Eleve         *studentModel.StudentModel `gorm:"foreignKey:IDEleve;references:IDEleve;constraint:OnDelete:CASCADE" json:"eleve,omitempty"`
	Classe        *classModel.ClassModel     `gorm:"foreignKey:IDClasse;references:IDClasse;constraint:OnDelete:RESTRICT" json:"classe,omitempty"`
	AnneeScolaire *yearModel.SchoolYearModel `gorm:"foreignKey:IDAnneeScolaire;references:IDAnneeScolaire;constraint:OnDelete:RESTRICT" json:"anneescolaire,omitempty"`
}

func (EnrollmentModel) TableName() string { return "inscription" }

type Key struct {
	IDEleve         int64
	IDClasse        int64
	IDAnneeScolaire int64
}

func (k Key) Values() []any { return []any{k.IDEleve, k.IDClasse, k.IDAnneeScolaire} }

// String is the composite id used in edit routes: ideleve-idclasse-idannee.
func (k Key) String() string {
	return fmt.Sprintf("%d-%d-%d", k.IDEleve, k.IDClasse, k.IDAnneeScolaire)
}

func (m *EnrollmentModel) Key() Key {
	return Key{IDEleve: m.IDEleve, IDClasse: m.IDClasse, IDAnneeScolaire: m.IDAnneeScolaire}
}

func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("clé d'inscription invalide %q", s)
	}
	var ids [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			return Key{}, fmt.Errorf("clé d'inscription invalide %q", s)
		}
		ids[i] = n
	}
	return Key{IDEleve: ids[0], IDClasse: ids[1], IDAnneeScolaire: ids[2]}, nil
}
