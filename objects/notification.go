// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 20:44:07 krylon>

// Package objects provides the data types used by the application.
package objects

import (
	"fmt"
	"time"

	"github.com/blicero/mnemosyne/objects/kind"
)

//go:generate ffjson notification.go

// Notification is one configured alert for a Reminder. Per Reminder
// each Kind is used at most once. Once scheduled, TriggerTime holds the
// point in time the alert goes off, and AlarmID the identifier it was
// registered under with the Timekeeper.
//
// AlarmID is always derived from the database ID, so it can be
// recomputed from the stored row alone when alarms are rebuilt.
type Notification struct {
	ID          int64
	ReminderID  int64
	Kind        kind.Kind
	Enabled     bool
	TriggerTime time.Time
	AlarmID     int64
	Changed     time.Time
}

func (n *Notification) String() string {
	return fmt.Sprintf("Notification{ ID: %d, ReminderID: %d, Kind: %s, TriggerTime: %s }",
		n.ID,
		n.ReminderID,
		n.Kind,
		n.TriggerTime.Format(time.RFC3339))
} // func (n *Notification) String() string

// Upcoming pairs a Notification with the bits of its Reminder that are
// needed to render it.
type Upcoming struct {
	Notification
	Name  string
	Day   int
	Month int
}
