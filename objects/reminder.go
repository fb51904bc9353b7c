// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 20:31:54 krylon>

package objects

import (
	"fmt"
	"strings"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects/kind"
)

//go:generate ffjson reminder.go

// MinYear is the oldest birth year we accept.
const MinYear = 1900

// Reminder is a birthday we keep track of: a name plus a date, where
// the year of birth may be unknown (0).
type Reminder struct {
	ID      int64
	Name    string
	Day     int
	Month   int
	Year    int
	UUID    string
	Changed time.Time
}

// Validate checks the Reminder for obviously bogus values.
// A day/month combination that does not exist in every year (i.e. Feb 29)
// is accepted, the calendar's rollover behavior takes care of it.
func (r *Reminder) Validate(now time.Time) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: Name must not be empty", ErrValidation)
	} else if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("%w: Day %d is out of range (1-31)",
			ErrValidation,
			r.Day)
	} else if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("%w: Month %d is out of range (1-12)",
			ErrValidation,
			r.Month)
	} else if r.Year != 0 && (r.Year < MinYear || r.Year > now.Year()+1) {
		return fmt.Errorf("%w: Year %d is out of range (%d-%d)",
			ErrValidation,
			r.Year,
			MinYear,
			now.Year()+1)
	}

	return nil
} // func (r *Reminder) Validate(now time.Time) error

// NextTrigger computes the point in time at which a Notification of the
// given Kind is due next. The candidate is the birthday in the current
// year at the notification hour, minus the Kind's lead days. If that has
// passed already, the birthday is shifted ahead one year at a time until
// the trigger lies in the future, so the result is always after now.
func (r *Reminder) NextTrigger(k kind.Kind, now time.Time) time.Time {
	var year = now.Year()

	for {
		var when = time.Date(
			year,
			time.Month(r.Month),
			r.Day,
			common.NotificationHour,
			0,
			0,
			0,
			now.Location()).AddDate(0, 0, -k.LeadDays())

		if when.After(now) {
			return when
		}

		year++
	}
} // func (r *Reminder) NextTrigger(k kind.Kind, now time.Time) time.Time

// NextOccurrence returns midnight of the next day the birthday falls on,
// on or after the day of the reference time.
func (r *Reminder) NextOccurrence(now time.Time) time.Time {
	var (
		today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		next  = time.Date(now.Year(), time.Month(r.Month), r.Day, 0, 0, 0, 0, now.Location())
	)

	if next.Before(today) {
		next = time.Date(now.Year()+1, time.Month(r.Month), r.Day, 0, 0, 0, 0, now.Location())
	}

	return next
} // func (r *Reminder) NextOccurrence(now time.Time) time.Time

// DaysUntil returns the number of whole days until the next occurrence
// of the birthday. If the birthday is today, it returns 0.
func (r *Reminder) DaysUntil(now time.Time) int {
	var (
		today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		next  = r.NextOccurrence(now)
	)

	return int(next.Sub(today) / (time.Hour * 24))
} // func (r *Reminder) DaysUntil(now time.Time) int

// Age returns the age the person is turning at the next occurrence of
// their birthday, or 0 if the year of birth is unknown.
func (r *Reminder) Age(now time.Time) int {
	if r.Year == 0 {
		return 0
	}

	return r.NextOccurrence(now).Year() - r.Year
} // func (r *Reminder) Age(now time.Time) int

// DateString returns the date in human-readable form.
func (r *Reminder) DateString() string {
	if r.Year != 0 {
		return fmt.Sprintf("%04d-%02d-%02d",
			r.Year,
			r.Month,
			r.Day)
	}

	return fmt.Sprintf("%02d-%02d",
		r.Month,
		r.Day)
} // func (r *Reminder) DateString() string

func (r *Reminder) String() string {
	return fmt.Sprintf("Reminder{ ID: %d, Name: %q, Date: %s }",
		r.ID,
		r.Name,
		r.DateString())
} // func (r *Reminder) String() string

// Detail bundles a Reminder with its Notifications, the way the
// frontend wants it for the edit form and the detail view.
type Detail struct {
	Reminder      Reminder
	Notifications []Notification
	DaysUntil     int
	Age           int
}
