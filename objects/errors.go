// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/errors.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-11-05 21:48:33 krylon>

package objects

import "errors"

// ErrValidation indicates that user input was rejected before anything
// was saved or scheduled.
var ErrValidation = errors.New("invalid input")
