// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/01_timekeeper_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 21:33:08 krylon>

package backend

import (
	"testing"
	"time"

	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
)

func TestTimekeeperSchedule(t *testing.T) {
	var (
		err   error
		queue = make(chan objects.Alert, queueDepth)
		clock *Timekeeper
		a     = objects.Alert{
			Name:    "Camila",
			AlarmID: 23,
			Kind:    kind.OnDate,
		}
	)

	if clock, err = NewTimekeeper(queue); err != nil {
		t.Fatalf("Cannot create Timekeeper: %s",
			err.Error())
	}

	var when = time.Now().Add(time.Hour)

	if err = clock.Schedule(a.AlarmID, when, a); err != nil {
		t.Fatalf("Cannot schedule alarm %d: %s",
			a.AlarmID,
			err.Error())
	}

	// Scheduling the same ID again must replace the first alarm, not
	// add a second one.
	if err = clock.Schedule(a.AlarmID, when.Add(time.Hour), a); err != nil {
		t.Fatalf("Cannot re-schedule alarm %d: %s",
			a.AlarmID,
			err.Error())
	}

	if ids := clock.Active(); len(ids) != 1 {
		t.Errorf("Unexpected number of active alarms: %d (expected 1)",
			len(ids))
	} else if ids[0] != a.AlarmID {
		t.Errorf("Unexpected alarm ID: %d (expected %d)",
			ids[0],
			a.AlarmID)
	}

	clock.Cancel(a.AlarmID)
	clock.Cancel(a.AlarmID) // cancelling twice must not hurt

	if ids := clock.Active(); len(ids) != 0 {
		t.Errorf("There should be no active alarms left, but there are %d",
			len(ids))
	}
} // func TestTimekeeperSchedule(t *testing.T)

func TestTimekeeperFire(t *testing.T) {
	var (
		err   error
		queue = make(chan objects.Alert, queueDepth)
		clock *Timekeeper
		a     = objects.Alert{
			Name:    "Camila",
			AlarmID: 42,
			Kind:    kind.TwoDaysBefore,
		}
	)

	if clock, err = NewTimekeeper(queue); err != nil {
		t.Fatalf("Cannot create Timekeeper: %s",
			err.Error())
	}

	if err = clock.Schedule(a.AlarmID, time.Now().Add(time.Millisecond*50), a); err != nil {
		t.Fatalf("Cannot schedule alarm %d: %s",
			a.AlarmID,
			err.Error())
	}

	select {
	case fired := <-queue:
		if fired.AlarmID != a.AlarmID || fired.Name != a.Name || fired.Kind != a.Kind {
			t.Errorf("Fired Alert does not match: %#v",
				fired)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("Alarm did not fire within 2 seconds")
	}

	if ids := clock.Active(); len(ids) != 0 {
		t.Errorf("Fired alarm %d should have been removed",
			a.AlarmID)
	}
} // func TestTimekeeperFire(t *testing.T)

func TestTimekeeperPastTrigger(t *testing.T) {
	var (
		err   error
		queue = make(chan objects.Alert, queueDepth)
		clock *Timekeeper
		a     = objects.Alert{
			Name:    "Camila",
			AlarmID: 57,
			Kind:    kind.OneWeekBefore,
		}
	)

	var savedGrace = graceDelay
	graceDelay = time.Millisecond * 50
	defer func() { graceDelay = savedGrace }()

	if clock, err = NewTimekeeper(queue); err != nil {
		t.Fatalf("Cannot create Timekeeper: %s",
			err.Error())
	}

	// A trigger time in the past must not be dropped, it fires after
	// the grace delay.
	if err = clock.Schedule(a.AlarmID, time.Now().Add(time.Hour*-24), a); err != nil {
		t.Fatalf("Cannot schedule alarm %d: %s",
			a.AlarmID,
			err.Error())
	}

	select {
	case fired := <-queue:
		if fired.AlarmID != a.AlarmID {
			t.Errorf("Unexpected Alert fired: %#v",
				fired)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("Past-due alarm did not fire within 2 seconds")
	}
} // func TestTimekeeperPastTrigger(t *testing.T)
