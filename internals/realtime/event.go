// Package realtime turns Postgres change notifications into live list
// updates pushed to websocket clients.
package realtime

import (
	"fmt"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
	// OpError is synthesized locally when the subscription connection fails.
	OpError Op = "ERROR"
)

// ChangeEvent mirrors the payload emitted by notify_table_change().
type ChangeEvent struct {
	Type      Op             `json:"type"`
	Table     string         `json:"table"`
	Record    datatypes.JSON `json:"record"`
	OldRecord datatypes.JSON `json:"old_record"`
	// Truncated events carry only the key columns; the row must be reloaded.
	Truncated bool           `json:"truncated"`
	Err       error          `json:"-"`
}

func ParseEvent(payload string) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := sonic.UnmarshalString(payload, &ev); err != nil {
		return ev, fmt.Errorf("payload invalide: %w", err)
	}
	switch ev.Type {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return ev, fmt.Errorf("type d'événement inconnu %q", ev.Type)
	}
	if ev.Table == "" {
		return ev, fmt.Errorf("table manquante")
	}
	return ev, nil
}

func errorEvent(table string, err error) ChangeEvent {
	return ChangeEvent{Type: OpError, Table: table, Err: err}
}
