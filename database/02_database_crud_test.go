// /home/krylon/go/src/github.com/blicero/mnemosyne/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 21:12:46 krylon>

package database

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
)

const itemCnt = 32

var items []*objects.Reminder

func init() {
	items = make([]*objects.Reminder, itemCnt)

	for i := range items {
		var r = &objects.Reminder{
			Name:  fmt.Sprintf("TEST #%03d", i),
			Day:   rand.Intn(28) + 1,
			Month: rand.Intn(12) + 1,
			UUID:  common.GetUUID(),
		}

		if rand.Intn(100) >= 50 {
			r.Year = 1950 + rand.Intn(70)
		}

		items[i] = r
	}
}

func TestReminderAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		var err error

		if err = db.ReminderAdd(r); err != nil {
			t.Fatalf("Cannot add Reminder %s: %s",
				r.Name,
				err.Error())
		} else if r.ID == 0 {
			t.Errorf("ID of Reminder %q is 0", r.Name)
		}
	}
} // func TestReminderAdd(t *testing.T)

func TestReminderGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		rem []objects.Reminder
	)

	if rem, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Reminders: %s",
			err.Error())
	} else if len(rem) != len(items) {
		t.Fatalf("Unexpected number of Reminders: %d (expected %d)",
			len(rem),
			len(items))
	}
} // func TestReminderGetAll(t *testing.T)

func TestReminderGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		ref = items[0]
		rem *objects.Reminder
	)

	if rem, err = db.ReminderGetByID(ref.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if rem == nil {
		t.Fatalf("Reminder %d was not found", ref.ID)
	} else if rem.Name != ref.Name || rem.Day != ref.Day || rem.Month != ref.Month {
		t.Errorf("Reminder %d came back wrong: %s (expected %s)",
			ref.ID,
			rem.String(),
			ref.String())
	}

	// A non-existent ID is not an error, just a nil result.
	if rem, err = db.ReminderGetByID(4611686018427387904); err != nil {
		t.Errorf("Looking up a non-existent Reminder should not fail: %s",
			err.Error())
	} else if rem != nil {
		t.Errorf("Lookup of non-existent Reminder returned %s",
			rem.String())
	}
} // func TestReminderGetByID(t *testing.T)

func TestNotificationAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var now = time.Now()

	for _, r := range items {
		for _, k := range kind.All() {
			var (
				err error
				n   = objects.Notification{
					ReminderID:  r.ID,
					Kind:        k,
					Enabled:     true,
					TriggerTime: r.NextTrigger(k, now),
				}
			)

			if err = db.NotificationAdd(&n); err != nil {
				t.Fatalf("Cannot add Notification (%s) for Reminder %q: %s",
					k,
					r.Name,
					err.Error())
			} else if n.ID == 0 {
				t.Errorf("ID of fresh Notification for Reminder %q is 0",
					r.Name)
			} else if err = db.NotificationSetTrigger(&n, n.TriggerTime, n.ID); err != nil {
				t.Fatalf("Cannot set trigger on Notification %d: %s",
					n.ID,
					err.Error())
			} else if n.AlarmID != n.ID {
				t.Errorf("AlarmID of Notification %d should be %d, not %d",
					n.ID,
					n.ID,
					n.AlarmID)
			}
		}
	}
} // func TestNotificationAdd(t *testing.T)

func TestNotificationGetByReminder(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		ref   = items[0]
		rules []objects.Notification
	)

	if rules, err = db.NotificationGetByReminder(ref.ID); err != nil {
		t.Fatalf("Cannot fetch Notifications for Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if len(rules) != len(kind.All()) {
		t.Fatalf("Unexpected number of Notifications for Reminder %d: %d (expected %d)",
			ref.ID,
			len(rules),
			len(kind.All()))
	}

	for _, n := range rules {
		if n.ReminderID != ref.ID {
			t.Errorf("Notification %d belongs to Reminder %d, not %d",
				n.ID,
				n.ReminderID,
				ref.ID)
		}
	}
} // func TestNotificationGetByReminder(t *testing.T)

func TestNotificationGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err      error
		upcoming []objects.Upcoming
	)

	if upcoming, err = db.NotificationGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Notifications: %s",
			err.Error())
	} else if len(upcoming) != len(items)*len(kind.All()) {
		t.Fatalf("Unexpected number of Notifications: %d (expected %d)",
			len(upcoming),
			len(items)*len(kind.All()))
	}

	for _, u := range upcoming {
		if u.Name == "" {
			t.Errorf("Notification %d has no name attached",
				u.ID)
		}
	}
} // func TestNotificationGetAll(t *testing.T)

func TestNotificationGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		ref   = items[0]
		rules []objects.Notification
		u     *objects.Upcoming
	)

	if rules, err = db.NotificationGetByReminder(ref.ID); err != nil {
		t.Fatalf("Cannot fetch Notifications for Reminder %d: %s",
			ref.ID,
			err.Error())
	}

	if u, err = db.NotificationGetByID(rules[0].ID); err != nil {
		t.Fatalf("Cannot fetch Notification %d: %s",
			rules[0].ID,
			err.Error())
	} else if u == nil {
		t.Fatalf("Notification %d was not found", rules[0].ID)
	} else if u.Name != ref.Name || u.Day != ref.Day || u.Month != ref.Month {
		t.Errorf("Notification %d came back with the wrong Reminder data: %q %02d-%02d",
			u.ID,
			u.Name,
			u.Month,
			u.Day)
	}

	if u, err = db.NotificationGetByID(4611686018427387904); err != nil {
		t.Errorf("Looking up a non-existent Notification should not fail: %s",
			err.Error())
	} else if u != nil {
		t.Errorf("Lookup of non-existent Notification returned %q",
			u.Name)
	}
} // func TestNotificationGetByID(t *testing.T)

func TestReminderUpdate(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		ref = items[1]
		rem *objects.Reminder
	)

	ref.Name = "RENAMED"
	ref.Day = 1
	ref.Month = 1

	if err = db.ReminderUpdate(ref); err != nil {
		t.Fatalf("Cannot update Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if rem, err = db.ReminderGetByID(ref.ID); err != nil {
		t.Fatalf("Cannot fetch Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if rem == nil {
		t.Fatalf("Reminder %d has vanished", ref.ID)
	} else if rem.Name != ref.Name || rem.Day != ref.Day || rem.Month != ref.Month {
		t.Errorf("Update of Reminder %d did not stick: %s",
			ref.ID,
			rem.String())
	}
} // func TestReminderUpdate(t *testing.T)

func TestReminderDelete(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		ref   = items[2]
		rem   *objects.Reminder
		rules []objects.Notification
	)

	if err = db.ReminderDelete(ref.ID); err != nil {
		t.Fatalf("Cannot delete Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if rem, err = db.ReminderGetByID(ref.ID); err != nil {
		t.Fatalf("Cannot look for deleted Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if rem != nil {
		t.Errorf("Reminder %d should be gone, but: %s",
			ref.ID,
			rem.String())
	}

	// The Notifications must go down with their Reminder.
	if rules, err = db.NotificationGetByReminder(ref.ID); err != nil {
		t.Fatalf("Cannot fetch Notifications for deleted Reminder %d: %s",
			ref.ID,
			err.Error())
	} else if len(rules) != 0 {
		t.Errorf("Deleted Reminder %d still has %d Notifications",
			ref.ID,
			len(rules))
	}
} // func TestReminderDelete(t *testing.T)
