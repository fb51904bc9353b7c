// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/kind/kind.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-18 17:40:12 krylon>

//go:generate stringer -type=Kind

// Package kind contains symbolic constants to specify what sort of
// Notifications a Reminder should produce.
package kind

import "fmt"

// Kind describes when, relative to the birthday itself, a Notification
// is supposed to go off.
type Kind uint8

// OnDate means the Notification goes off on the birthday itself,
// TwoDaysBefore and OneWeekBefore mean it goes off 2 or 7 days
// earlier, respectively.
const (
	OnDate Kind = iota
	TwoDaysBefore
	OneWeekBefore
)

type properties struct {
	leadDays int
	title    string
	body     string
}

var table = map[Kind]properties{
	OnDate: {
		leadDays: 0,
		title:    "%s has their birthday today!",
		body:     "Today is %s's birthday. Don't forget to send your congratulations.",
	},
	TwoDaysBefore: {
		leadDays: 2,
		title:    "%s's birthday is in two days",
		body:     "Only two days left until %s's birthday.",
	},
	OneWeekBefore: {
		leadDays: 7,
		title:    "%s's birthday is in one week",
		body:     "One week from now it is %s's birthday.",
	},
}

// All returns a slice of all the valid Kinds.
func All() []Kind {
	return []Kind{OnDate, TwoDaysBefore, OneWeekBefore}
} // func All() []Kind

// Valid returns true if the receiver is a known Kind.
func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
} // func (k Kind) Valid() bool

// LeadDays returns the number of days before the birthday the
// Notification is supposed to go off.
func (k Kind) LeadDays() int {
	return table[k].leadDays
} // func (k Kind) LeadDays() int

// Render returns the title and body for a Notification, with the
// given name filled in.
func (k Kind) Render(name string) (string, string) {
	var p = table[k]

	return fmt.Sprintf(p.title, name), fmt.Sprintf(p.body, name)
} // func (k Kind) Render(name string) (string, string)

// Parse returns the Kind whose name matches the given string.
func Parse(s string) (Kind, error) {
	for _, k := range All() {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("Unknown notification kind %q", s)
} // func Parse(s string) (Kind, error)
