// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/02_manager_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 17:58:33 krylon>

package backend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
)

// fakePort records Schedule and Cancel calls so tests can check what
// the Manager did to the alarms.
type fakePort struct {
	lock      sync.Mutex
	scheduled map[int64]time.Time
	cancelled []int64
}

func newFakePort() *fakePort {
	return &fakePort{
		scheduled: make(map[int64]time.Time),
	}
} // func newFakePort() *fakePort

func (f *fakePort) Schedule(id int64, when time.Time, a objects.Alert) error {
	f.lock.Lock()
	f.scheduled[id] = when
	f.lock.Unlock()
	return nil
} // func (f *fakePort) Schedule(id int64, when time.Time, a objects.Alert) error

func (f *fakePort) Cancel(id int64) {
	f.lock.Lock()
	delete(f.scheduled, id)
	f.cancelled = append(f.cancelled, id)
	f.lock.Unlock()
} // func (f *fakePort) Cancel(id int64)

func (f *fakePort) count() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.scheduled)
} // func (f *fakePort) count()

func (f *fakePort) reset() {
	f.lock.Lock()
	f.scheduled = make(map[int64]time.Time)
	f.cancelled = nil
	f.lock.Unlock()
} // func (f *fakePort) reset()

var (
	mgr  *Manager
	port *fakePort
	cam  = objects.Reminder{
		Name:  "Camila",
		Day:   5,
		Month: 8,
		Year:  1990,
	}
)

func TestManagerCreate(t *testing.T) {
	var (
		err  error
		pool *database.Pool
	)

	if pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	}

	port = newFakePort()

	if mgr, err = NewManager(pool, port); err != nil {
		mgr = nil
		t.Fatalf("Cannot create Manager: %s",
			err.Error())
	}
} // func TestManagerCreate(t *testing.T)

func TestManagerReminderAdd(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		det *objects.Detail
		now = time.Now()
	)

	if err = mgr.ReminderAdd(&cam, []kind.Kind{kind.OnDate}); err != nil {
		t.Fatalf("Cannot add Reminder %q: %s",
			cam.Name,
			err.Error())
	} else if cam.ID == 0 {
		t.Fatal("ID of freshly added Reminder is 0")
	}

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			cam.ID,
			err.Error())
	} else if det == nil {
		t.Fatalf("Reminder %d was not found after adding it", cam.ID)
	} else if len(det.Notifications) != 1 {
		t.Fatalf("Unexpected number of Notifications: %d (expected 1)",
			len(det.Notifications))
	}

	var n = det.Notifications[0]

	if n.AlarmID != n.ID {
		t.Errorf("AlarmID %d should equal the Notification's own ID %d",
			n.AlarmID,
			n.ID)
	} else if !n.TriggerTime.After(now) {
		t.Errorf("Trigger time %s is not in the future",
			n.TriggerTime)
	}

	port.lock.Lock()
	var when, ok = port.scheduled[n.ID]
	port.lock.Unlock()

	if !ok {
		t.Errorf("No alarm was scheduled under ID %d", n.ID)
	} else if !when.Equal(n.TriggerTime) {
		t.Errorf("Alarm %d was scheduled for %s, expected %s",
			n.ID,
			when,
			n.TriggerTime)
	}

	// Adding an invalid Reminder must fail and leave no trace.
	var bogus = objects.Reminder{Name: "", Day: 5, Month: 8}

	if err = mgr.ReminderAdd(&bogus, []kind.Kind{kind.OnDate}); err == nil {
		t.Error("Adding a Reminder without a name should fail")
	} else if !errors.Is(err, objects.ErrValidation) {
		t.Errorf("Expected a validation error, got: %s",
			err.Error())
	}
} // func TestManagerReminderAdd(t *testing.T)

func TestManagerReminderUpdate(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		det *objects.Detail
	)

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			cam.ID,
			err.Error())
	}

	var oldRule = det.Notifications[0]

	cam.Name = "Camila Gonzalez"

	var kinds = []kind.Kind{kind.TwoDaysBefore, kind.OneWeekBefore}

	if err = mgr.ReminderUpdate(&cam, kinds); err != nil {
		t.Fatalf("Cannot update Reminder %d: %s",
			cam.ID,
			err.Error())
	}

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			cam.ID,
			err.Error())
	} else if det.Reminder.Name != cam.Name {
		t.Errorf("Name change did not stick: %q",
			det.Reminder.Name)
	} else if len(det.Notifications) != 2 {
		t.Fatalf("Unexpected number of Notifications after update: %d (expected 2)",
			len(det.Notifications))
	}

	port.lock.Lock()
	var cancelled = make(map[int64]bool, len(port.cancelled))
	for _, id := range port.cancelled {
		cancelled[id] = true
	}
	port.lock.Unlock()

	if !cancelled[oldRule.ID] {
		t.Errorf("Old alarm %d was not cancelled", oldRule.ID)
	}

	for _, n := range det.Notifications {
		port.lock.Lock()
		var _, ok = port.scheduled[n.ID]
		port.lock.Unlock()

		if !ok {
			t.Errorf("No alarm was scheduled for Notification %d (%s)",
				n.ID,
				n.Kind)
		}
	}

	// Updating a Reminder that does not exist must fail cleanly.
	var ghost = objects.Reminder{ID: 4611686018427387904, Name: "Ghost", Day: 1, Month: 1}

	if err = mgr.ReminderUpdate(&ghost, kinds); !errors.Is(err, ErrNotFound) {
		t.Errorf("Updating a non-existent Reminder should return ErrNotFound, got: %v",
			err)
	}
} // func TestManagerReminderUpdate(t *testing.T)

func TestManagerReconcile(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err   error
		extra = []objects.Reminder{
			objects.Reminder{Name: "Dieter", Day: 24, Month: 12},
			objects.Reminder{Name: "Erika", Day: 1, Month: 4, Year: 1968},
		}
	)

	for idx := range extra {
		if err = mgr.ReminderAdd(&extra[idx], []kind.Kind{kind.OnDate}); err != nil {
			t.Fatalf("Cannot add Reminder %q: %s",
				extra[idx].Name,
				err.Error())
		}
	}

	// Simulate a restart: all alarms are gone, reconciliation has to
	// rebuild every single one from the database.
	port.reset()

	mgr.Reconcile()

	var upcoming []objects.Upcoming

	if upcoming, err = mgr.UpcomingGetAll(); err != nil {
		t.Fatalf("Cannot fetch Notifications: %s",
			err.Error())
	}

	if port.count() != len(upcoming) {
		t.Errorf("Reconcile scheduled %d alarm(s), expected %d",
			port.count(),
			len(upcoming))
	}

	for _, u := range upcoming {
		port.lock.Lock()
		var when, ok = port.scheduled[u.ID]
		port.lock.Unlock()

		if !ok {
			t.Errorf("Notification %d (%s for %q) was not scheduled",
				u.ID,
				u.Kind,
				u.Name)
		} else if !when.After(time.Now().Add(time.Hour * -1)) {
			t.Errorf("Notification %d was scheduled for the distant past: %s",
				u.ID,
				when)
		}
	}
} // func TestManagerReconcile(t *testing.T)

func TestManagerRearm(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		det *objects.Detail
		now = time.Now()
	)

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			cam.ID,
			err.Error())
	}

	var n = det.Notifications[0]

	mgr.Rearm(n.ID)

	port.lock.Lock()
	var when, ok = port.scheduled[n.ID]
	port.lock.Unlock()

	if !ok {
		t.Fatalf("Alarm %d was not re-armed", n.ID)
	} else if !when.After(now) {
		t.Errorf("Re-armed alarm %d has a trigger in the past: %s",
			n.ID,
			when)
	}

	// Re-arming an alarm whose Notification is gone must be a no-op.
	mgr.Rearm(4611686018427387904)
} // func TestManagerRearm(t *testing.T)

func TestManagerSubscribe(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		rem = objects.Reminder{Name: "Frauke", Day: 11, Month: 11}
	)

	var id, ch = mgr.Subscribe()
	defer mgr.Unsubscribe(id)

	if err = mgr.ReminderAdd(&rem, []kind.Kind{kind.OneWeekBefore}); err != nil {
		t.Fatalf("Cannot add Reminder %q: %s",
			rem.Name,
			err.Error())
	}

	select {
	case list := <-ch:
		var found bool
		for idx := range list {
			if list[idx].ID == rem.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Snapshot sent to subscriber does not contain %q",
				rem.Name)
		}
	case <-time.After(time.Second * 2):
		t.Error("Subscriber did not receive a snapshot within 2 seconds")
	}
} // func TestManagerSubscribe(t *testing.T)

func TestManagerReminderDelete(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		det *objects.Detail
	)

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			cam.ID,
			err.Error())
	}

	var ruleIDs = make([]int64, 0, len(det.Notifications))
	for _, n := range det.Notifications {
		ruleIDs = append(ruleIDs, n.ID)
	}

	if err = mgr.ReminderDelete(cam.ID); err != nil {
		t.Fatalf("Cannot delete Reminder %d: %s",
			cam.ID,
			err.Error())
	}

	if det, err = mgr.ReminderGet(cam.ID); err != nil {
		t.Fatalf("Cannot look for deleted Reminder %d: %s",
			cam.ID,
			err.Error())
	} else if det != nil {
		t.Errorf("Reminder %d should be gone", cam.ID)
	}

	port.lock.Lock()
	for _, id := range ruleIDs {
		if _, ok := port.scheduled[id]; ok {
			t.Errorf("Alarm %d should have been cancelled", id)
		}
	}
	port.lock.Unlock()

	// Deleting it again is fine.
	if err = mgr.ReminderDelete(cam.ID); err != nil {
		t.Errorf("Deleting a non-existent Reminder should be a no-op: %s",
			err.Error())
	}
} // func TestManagerReminderDelete(t *testing.T)
