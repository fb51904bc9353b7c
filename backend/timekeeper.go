// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/timekeeper.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 21:40:08 krylon>

package backend

import (
	"log"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
)

// AlarmPort is the interface to the facility that wakes us up at a
// given point in time. The database is the source of truth for what
// should be scheduled; an AlarmPort implementation holds volatile
// state only, to be rebuilt from the database after a restart.
type AlarmPort interface {
	// Schedule registers a one-shot alarm under the given ID,
	// replacing any alarm previously registered under the same ID.
	Schedule(id int64, when time.Time, a objects.Alert) error
	// Cancel removes the alarm registered under the given ID.
	// Cancelling an unknown ID is a no-op.
	Cancel(id int64)
}

// graceDelay is how long we wait before firing an alarm whose trigger
// time has already passed when it is handed to us. This happens when
// the clock jumps, e.g. after waking from suspend.
var graceDelay = time.Second * 5

// Timekeeper implements AlarmPort with one timer per alarm ID. Fired
// alarms push their Alert onto the queue handed to NewTimekeeper.
type Timekeeper struct {
	log    *log.Logger
	lock   sync.Mutex
	timers map[int64]*time.Timer
	queue  chan<- objects.Alert
}

// NewTimekeeper creates a Timekeeper that delivers fired Alerts into
// the given queue.
func NewTimekeeper(queue chan<- objects.Alert) (*Timekeeper, error) {
	var (
		err error
		t   = &Timekeeper{
			timers: make(map[int64]*time.Timer),
			queue:  queue,
		}
	)

	if t.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	}

	return t, nil
} // func NewTimekeeper(queue chan<- objects.Alert) (*Timekeeper, error)

// Schedule registers an alarm. At most one alarm exists per ID; a
// second call with the same ID replaces the first.
func (t *Timekeeper) Schedule(id int64, when time.Time, a objects.Alert) error {
	var delay = time.Until(when)

	if delay <= 0 {
		t.log.Printf("[INFO] Trigger time %s of alarm %d has passed, firing after grace delay\n",
			when.Format(common.TimestampFormat),
			id)
		delay = graceDelay
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if old, ok := t.timers[id]; ok {
		old.Stop()
	}

	t.timers[id] = time.AfterFunc(delay, func() { t.fire(id, a) })

	t.log.Printf("[DEBUG] Alarm %d (%s for %q) set for %s\n",
		id,
		a.Kind,
		a.Name,
		when.Format(common.TimestampFormat))

	return nil
} // func (t *Timekeeper) Schedule(id int64, when time.Time, a objects.Alert) error

// Cancel stops the alarm registered under the given ID, if any.
func (t *Timekeeper) Cancel(id int64) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if old, ok := t.timers[id]; ok {
		old.Stop()
		delete(t.timers, id)
		t.log.Printf("[DEBUG] Alarm %d was cancelled\n", id)
	}
} // func (t *Timekeeper) Cancel(id int64)

func (t *Timekeeper) fire(id int64, a objects.Alert) {
	t.lock.Lock()
	delete(t.timers, id)
	t.lock.Unlock()

	t.queue <- a
} // func (t *Timekeeper) fire(id int64, a objects.Alert)

// Active returns the IDs of all currently registered alarms.
func (t *Timekeeper) Active() []int64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	var ids = make([]int64, 0, len(t.timers))

	for id := range t.timers {
		ids = append(ids, id)
	}

	return ids
} // func (t *Timekeeper) Active() []int64

// Clear stops all registered alarms.
func (t *Timekeeper) Clear() {
	t.lock.Lock()
	defer t.lock.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
} // func (t *Timekeeper) Clear()
