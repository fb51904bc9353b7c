// /home/krylon/go/src/github.com/blicero/mnemosyne/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-12 17:31:48 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	ReminderAdd ID = iota
	ReminderUpdate
	ReminderDelete
	ReminderGetByID
	ReminderGetAll
	NotificationAdd
	NotificationSetTrigger
	NotificationDeleteByReminder
	NotificationGetByID
	NotificationGetByReminder
	NotificationGetAll
)
