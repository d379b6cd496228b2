package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	parentModel "ecole_backend/internals/features/people/parents/model"
)

// NotificationModel is a message for one parent, or for every parent when
// IDParent is nil.
type NotificationModel struct {
	IDNotification int64     `gorm:"column:idnotification;primaryKey;autoIncrement" json:"idnotification"`
	Message        string    `gorm:"column:message;type:text;not null" json:"message"`
	DateEnvoi      time.Time `gorm:"column:dateenvoi;not null;autoCreateTime" json:"dateenvoi"`
	IDParent       *int64    `gorm:"column:idparent" json:"idparent"`

	Parent *parentModel.ParentModel `gorm:"foreignKey:IDParent;references:IDParent;constraint:OnDelete:CASCADE" json:"parent,omitempty"`
}

func (NotificationModel) TableName() string { return "notification" }

func (m *NotificationModel) IsBroadcast() bool { return m.IDParent == nil }

func (m *NotificationModel) BeforeSave(tx *gorm.DB) error {
	m.Message = strings.TrimSpace(m.Message)
	return nil
}
