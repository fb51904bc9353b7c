// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-12-30 18:02:45 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
type Response struct {
	ID      int64
	Status  bool
	Message string
}
