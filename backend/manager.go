// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/manager.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 17:52:28 krylon>

package backend

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
)

// ErrNotFound means the Reminder in question does not exist (anymore).
var ErrNotFound = errors.New("no such Reminder")

// Manager owns the lifecycle of Reminders and their Notifications: it
// keeps the database rows and the alarms registered with the AlarmPort
// in sync across create, edit, delete, and restart.
type Manager struct {
	log     *log.Logger
	pool    *database.Pool
	clock   AlarmPort
	subLock sync.Mutex
	subs    map[int64]chan []objects.Reminder
	subCnt  int64
}

// NewManager creates a Manager using the given connection pool and
// AlarmPort.
func NewManager(pool *database.Pool, clock AlarmPort) (*Manager, error) {
	var (
		err error
		m   = &Manager{
			pool:  pool,
			clock: clock,
			subs:  make(map[int64]chan []objects.Reminder),
		}
	)

	if m.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	}

	return m, nil
} // func NewManager(pool *database.Pool, clock AlarmPort) (*Manager, error)

// ReminderAdd validates and stores a new Reminder, creates one
// Notification per requested Kind, and schedules the alarms.
//
// Rows are committed before any alarm is registered, so a failure
// leaves neither stray rows nor an alarm without a backing row. A
// failure to register an alarm, on the other hand, does not fail the
// save; the next reconciliation pass picks the Notification up again.
func (m *Manager) ReminderAdd(rem *objects.Reminder, kinds []kind.Kind) error {
	var (
		err   error
		db    *database.Database
		now   = time.Now()
		rules []objects.Notification
	)

	if err = rem.Validate(now); err != nil {
		m.log.Printf("[INFO] Refusing to add Reminder: %s\n",
			err.Error())
		return err
	}

	if rem.UUID == "" {
		rem.UUID = common.GetUUID()
	}

	db = m.pool.Get()
	defer m.pool.Put(db)

	if err = db.Begin(); err != nil {
		m.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return err
	} else if err = db.ReminderAdd(rem); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if rules, err = m.createRules(db, rem, kinds, now); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.Commit(); err != nil {
		m.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	m.scheduleRules(rem, rules)
	m.publish()

	m.log.Printf("[INFO] Added %s with %d notification(s)\n",
		rem,
		len(rules))

	return nil
} // func (m *Manager) ReminderAdd(rem *objects.Reminder, kinds []kind.Kind) error

// ReminderUpdate replaces a Reminder's data and its entire set of
// Notifications: all existing alarms are cancelled, the old rows are
// deleted, and the create path is re-run against the existing ID.
func (m *Manager) ReminderUpdate(rem *objects.Reminder, kinds []kind.Kind) error {
	var (
		err      error
		db       *database.Database
		old      *objects.Reminder
		existing []objects.Notification
		rules    []objects.Notification
		now      = time.Now()
	)

	if err = rem.Validate(now); err != nil {
		m.log.Printf("[INFO] Refusing to update Reminder %d: %s\n",
			rem.ID,
			err.Error())
		return err
	}

	db = m.pool.Get()
	defer m.pool.Put(db)

	if old, err = db.ReminderGetByID(rem.ID); err != nil {
		return err
	} else if old == nil {
		return ErrNotFound
	} else if existing, err = db.NotificationGetByReminder(rem.ID); err != nil {
		return err
	}

	rem.UUID = old.UUID

	// If the transaction below fails, the alarms cancelled here are
	// restored by the next reconciliation pass.
	for idx := range existing {
		m.clock.Cancel(existing[idx].ID)
	}

	if err = db.Begin(); err != nil {
		m.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return err
	} else if err = db.ReminderUpdate(rem); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.NotificationDeleteByReminder(rem.ID); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if rules, err = m.createRules(db, rem, kinds, now); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.Commit(); err != nil {
		m.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	m.scheduleRules(rem, rules)
	m.publish()

	m.log.Printf("[INFO] Updated %s, replaced %d notification(s) with %d\n",
		rem,
		len(existing),
		len(rules))

	return nil
} // func (m *Manager) ReminderUpdate(rem *objects.Reminder, kinds []kind.Kind) error

// ReminderDelete cancels all of a Reminder's alarms and removes the
// Reminder and its Notifications from the database. Deleting a
// Reminder that does not exist is a no-op.
func (m *Manager) ReminderDelete(id int64) error {
	var (
		err      error
		db       *database.Database
		rem      *objects.Reminder
		existing []objects.Notification
	)

	db = m.pool.Get()
	defer m.pool.Put(db)

	if rem, err = db.ReminderGetByID(id); err != nil {
		return err
	} else if rem == nil {
		m.log.Printf("[INFO] Reminder %d does not exist, nothing to delete\n",
			id)
		return nil
	} else if existing, err = db.NotificationGetByReminder(id); err != nil {
		return err
	}

	for idx := range existing {
		m.clock.Cancel(existing[idx].ID)
	}

	if err = db.Begin(); err != nil {
		m.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return err
	} else if err = db.NotificationDeleteByReminder(id); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.ReminderDelete(id); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.Commit(); err != nil {
		m.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	m.publish()

	m.log.Printf("[INFO] Deleted %s and %d notification(s)\n",
		rem,
		len(existing))

	return nil
} // func (m *Manager) ReminderDelete(id int64) error

// ReminderGet returns a Reminder with its Notifications, or nil if no
// such Reminder exists.
func (m *Manager) ReminderGet(id int64) (*objects.Detail, error) {
	var (
		err error
		db  *database.Database
		rem *objects.Reminder
		det *objects.Detail
		now = time.Now()
	)

	db = m.pool.Get()
	defer m.pool.Put(db)

	if rem, err = db.ReminderGetByID(id); err != nil {
		return nil, err
	} else if rem == nil {
		return nil, nil
	}

	det = &objects.Detail{
		Reminder:  *rem,
		DaysUntil: rem.DaysUntil(now),
		Age:       rem.Age(now),
	}

	if det.Notifications, err = db.NotificationGetByReminder(id); err != nil {
		return nil, err
	}

	return det, nil
} // func (m *Manager) ReminderGet(id int64) (*objects.Detail, error)

// ReminderGetAll returns all Reminders.
func (m *Manager) ReminderGetAll() ([]objects.Reminder, error) {
	var db = m.pool.Get()
	defer m.pool.Put(db)

	return db.ReminderGetAll()
} // func (m *Manager) ReminderGetAll() ([]objects.Reminder, error)

// UpcomingGetAll returns all Notifications together with the Reminder
// data needed to display them, ordered by trigger time.
func (m *Manager) UpcomingGetAll() ([]objects.Upcoming, error) {
	var db = m.pool.Get()
	defer m.pool.Put(db)

	return db.NotificationGetAll()
} // func (m *Manager) UpcomingGetAll() ([]objects.Upcoming, error)

// Reconcile rebuilds the alarms for every Notification in the database.
// Alarms do not survive a restart of the daemon, the stored rows do, so
// the rows are authoritative and this pass re-registers everything.
// Trigger times that have passed while we were not running are
// recomputed. Failures are contained per Reminder, one broken Reminder
// does not keep the others from being scheduled.
func (m *Manager) Reconcile() {
	var (
		err       error
		db        *database.Database
		reminders []objects.Reminder
		now       = time.Now()
		cnt       int
	)

	db = m.pool.Get()
	defer m.pool.Put(db)

	if reminders, err = db.ReminderGetAll(); err != nil {
		m.log.Printf("[ERROR] Cannot load Reminders for reconciliation: %s\n",
			err.Error())
		return
	}

	for idx := range reminders {
		var (
			rem   = &reminders[idx]
			rules []objects.Notification
		)

		if rules, err = db.NotificationGetByReminder(rem.ID); err != nil {
			m.log.Printf("[ERROR] Cannot load Notifications of %s, skipping: %s\n",
				rem,
				err.Error())
			continue
		}

		for jdx := range rules {
			var n = &rules[jdx]

			if !n.Enabled {
				continue
			}

			var when = n.TriggerTime

			if !when.After(now) {
				when = rem.NextTrigger(n.Kind, now)
				if err = db.NotificationSetTrigger(n, when, n.ID); err != nil {
					m.log.Printf("[ERROR] Cannot store fresh trigger for Notification %d, skipping: %s\n",
						n.ID,
						err.Error())
					continue
				}
			}

			var a = objects.Alert{
				Name:    rem.Name,
				AlarmID: n.ID,
				Kind:    n.Kind,
			}

			if err = m.clock.Schedule(n.ID, when, a); err != nil {
				m.log.Printf("[ERROR] Cannot schedule alarm %d for %s: %s\n",
					n.ID,
					rem,
					err.Error())
				continue
			}

			cnt++
		}
	}

	m.log.Printf("[INFO] Reconciliation pass finished, %d alarm(s) scheduled for %d Reminder(s)\n",
		cnt,
		len(reminders))
} // func (m *Manager) Reconcile()

// Rearm schedules the next occurrence of a Notification that has just
// fired. If the Notification was deleted in the meantime, nothing
// happens.
func (m *Manager) Rearm(alarmID int64) {
	var (
		err error
		db  *database.Database
		u   *objects.Upcoming
		now = time.Now()
	)

	db = m.pool.Get()
	defer m.pool.Put(db)

	if u, err = db.NotificationGetByID(alarmID); err != nil {
		m.log.Printf("[ERROR] Cannot look up Notification %d: %s\n",
			alarmID,
			err.Error())
		return
	} else if u == nil {
		m.log.Printf("[INFO] Notification %d no longer exists, not re-arming\n",
			alarmID)
		return
	}

	var (
		rem = objects.Reminder{
			Name:  u.Name,
			Day:   u.Day,
			Month: u.Month,
		}
		when = rem.NextTrigger(u.Kind, now)
		a    = objects.Alert{
			Name:    u.Name,
			AlarmID: u.ID,
			Kind:    u.Kind,
		}
	)

	if err = db.NotificationSetTrigger(&u.Notification, when, u.ID); err != nil {
		m.log.Printf("[ERROR] Cannot store next trigger for Notification %d: %s\n",
			u.ID,
			err.Error())
		return
	} else if err = m.clock.Schedule(u.ID, when, a); err != nil {
		m.log.Printf("[ERROR] Cannot re-arm alarm %d: %s\n",
			u.ID,
			err.Error())
		return
	}

	m.log.Printf("[DEBUG] Alarm %d re-armed for %s\n",
		u.ID,
		when.Format(common.TimestampFormat))
} // func (m *Manager) Rearm(alarmID int64)

// Subscribe registers a channel that receives the full list of
// Reminders after every mutation. The returned ID is used to
// unsubscribe.
func (m *Manager) Subscribe() (int64, <-chan []objects.Reminder) {
	var ch = make(chan []objects.Reminder, 1)

	m.subLock.Lock()
	m.subCnt++
	var id = m.subCnt
	m.subs[id] = ch
	m.subLock.Unlock()

	return id, ch
} // func (m *Manager) Subscribe() (int64, <-chan []objects.Reminder)

// Unsubscribe removes the subscription with the given ID.
func (m *Manager) Unsubscribe(id int64) {
	m.subLock.Lock()
	delete(m.subs, id)
	m.subLock.Unlock()
} // func (m *Manager) Unsubscribe(id int64)

// publish pushes a fresh snapshot of the Reminder list to all
// subscribers. A subscriber that has not consumed the previous
// snapshot gets it replaced, nobody is ever blocked on.
func (m *Manager) publish() {
	var (
		err       error
		reminders []objects.Reminder
	)

	if reminders, err = m.ReminderGetAll(); err != nil {
		m.log.Printf("[ERROR] Cannot load Reminders for subscribers: %s\n",
			err.Error())
		return
	}

	m.subLock.Lock()
	defer m.subLock.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- reminders:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- reminders:
		default:
		}
	}
} // func (m *Manager) publish()

// createRules inserts one Notification per requested Kind, computes
// its trigger, and stores the alarm ID, which is always the row ID.
// Runs inside the caller's transaction.
func (m *Manager) createRules(db *database.Database, rem *objects.Reminder, kinds []kind.Kind, now time.Time) ([]objects.Notification, error) {
	var (
		err   error
		seen  = make(map[kind.Kind]bool, len(kinds))
		rules = make([]objects.Notification, 0, len(kinds))
	)

	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true

		var n = objects.Notification{
			ReminderID:  rem.ID,
			Kind:        k,
			Enabled:     true,
			TriggerTime: rem.NextTrigger(k, now),
		}

		if err = db.NotificationAdd(&n); err != nil {
			return nil, err
		} else if err = db.NotificationSetTrigger(&n, n.TriggerTime, n.ID); err != nil {
			return nil, err
		}

		rules = append(rules, n)
	}

	return rules, nil
} // func (m *Manager) createRules(...) ([]objects.Notification, error)

// scheduleRules registers the alarms for freshly created rules. A
// scheduling failure is logged but does not fail the save, the next
// reconciliation pass catches the Notification again.
func (m *Manager) scheduleRules(rem *objects.Reminder, rules []objects.Notification) {
	for idx := range rules {
		var (
			n = &rules[idx]
			a = objects.Alert{
				Name:    rem.Name,
				AlarmID: n.ID,
				Kind:    n.Kind,
			}
		)

		if err := m.clock.Schedule(n.ID, n.TriggerTime, a); err != nil {
			m.log.Printf("[WARN] Cannot schedule alarm %d for %s: %s\n",
				n.ID,
				rem,
				err.Error())
		}
	}
} // func (m *Manager) scheduleRules(rem *objects.Reminder, rules []objects.Notification)
