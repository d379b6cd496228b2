package model

import (
	"strings"

	"gorm.io/gorm"
)

type OptionModel struct {
	IDOption    int64  `gorm:"column:idoption;primaryKey;autoIncrement" json:"idoption"`
	NomOption   string `gorm:"column:nomoption;type:text;not null" json:"nomoption"`
	Abreviation string `gorm:"column:abreviation;type:text;not null" json:"abreviation"`
}

func (OptionModel) TableName() string { return "option" }

func (m *OptionModel) BeforeSave(tx *gorm.DB) error {
	m.NomOption = strings.TrimSpace(m.NomOption)
	m.Abreviation = strings.TrimSpace(m.Abreviation)
	return nil
}
