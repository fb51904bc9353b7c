// /home/krylon/go/src/github.com/blicero/mnemosyne/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-12-30 18:40:19 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
)

// Pool is a fixed-size cache of database connections. Getting a
// connection from an exhausted Pool opens a fresh one rather than
// blocking the caller.
type Pool struct {
	log  *log.Logger
	lock sync.Mutex
	pool []*Database
	size int
}

// NewPool creates a Pool of cnt connections to the default database.
func NewPool(cnt int) (*Pool, error) {
	var (
		err error
		p   = &Pool{
			pool: make([]*Database, 0, cnt),
			size: cnt,
		}
	)

	if p.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			p.log.Printf("[ERROR] Cannot open database connection #%d: %s\n",
				i+1,
				err.Error())
			p.Close()
			return nil, err
		}

		p.pool = append(p.pool, db)
	}

	return p, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a connection from the Pool, opening a fresh one if the
// Pool is empty. If opening a connection fails, it returns nil.
func (p *Pool) Get() *Database {
	p.lock.Lock()

	if cnt := len(p.pool); cnt > 0 {
		var db = p.pool[cnt-1]
		p.pool = p.pool[:cnt-1]
		p.lock.Unlock()
		return db
	}

	p.lock.Unlock()

	var (
		err error
		db  *Database
	)

	if db, err = Open(common.DbPath); err != nil {
		p.log.Printf("[ERROR] Cannot open fresh database connection: %s\n",
			err.Error())
		return nil
	}

	return db
} // func (p *Pool) Get() *Database

// Put returns a connection to the Pool. If the Pool is full, the
// connection is closed instead.
func (p *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	p.lock.Lock()

	if len(p.pool) < p.size {
		p.pool = append(p.pool, db)
		p.lock.Unlock()
		return
	}

	p.lock.Unlock()

	if err := db.Close(); err != nil {
		p.log.Printf("[ERROR] Cannot close surplus database connection: %s\n",
			err.Error())
	}
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, db := range p.pool {
		if err := db.Close(); err != nil {
			p.log.Printf("[ERROR] Cannot close database connection: %s\n",
				err.Error())
		}
	}

	p.pool = p.pool[:0]
} // func (p *Pool) Close()
