// /home/krylon/go/src/github.com/blicero/mnemosyne/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-11-02 19:14:36 krylon>

// Package logdomain provides symbolic constants to identify the various
// parts of the application that need to do logging.
package logdomain

//go:generate stringer -type=ID

// ID identifies a log source.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	Client
	Database
	DBPool
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Client,
		Database,
		DBPool,
	}
} // func AllDomains() []ID
