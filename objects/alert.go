// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/alert.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-12-28 16:20:11 krylon>

package objects

import "github.com/blicero/mnemosyne/objects/kind"

// Alert is the payload a scheduled alarm carries. When the alarm goes
// off, this is all the delivery side needs to post the notification.
type Alert struct {
	Name    string
	AlarmID int64
	Kind    kind.Kind
}

// Payload returns the title and body of the notification to post.
func (a *Alert) Payload() (string, string) {
	return a.Kind.Render(a.Name)
} // func (a *Alert) Payload() (string, string)
