// /home/krylon/go/src/github.com/blicero/mnemosyne/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-22 21:10:49 krylon>

// Package database provides the persistence layer of the application.
// It wraps the actual database connection and provides a set of
// operations the rest of the application uses, so no SQL leaks into
// other packages.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database/query"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

var (
	openLock sync.Mutex
	idCnt    int64
)

var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if the given error is transient so that
// retrying the failed operation makes sense.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we retry a query.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database wraps a connection to the database and provides the
// operations on it the application needs.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens the database at the given path. If the database does not
// exist yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if database file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open database at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Cannot close database: %s\n",
					e2.Error())
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Cannot remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Initialized fresh database at %s\n", path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query:\n%s\n%s\n",
				q,
				err.Error())
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
	}

	return tx.Commit()
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(id query.ID) (*sql.Stmt, error)

// Begin starts a transaction.
func (db *Database) Begin() error {
	var (
		err error
		tx  *sql.Tx
	)

	if db.tx != nil {
		return fmt.Errorf("Database #%d already has an active transaction",
			db.id)
	}

BEGIN_TX:
	for tx == nil {
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Cannot start transaction: %s\n",
				err.Error())
			return err
		}
	}

	db.tx = tx
	return nil
} // func (db *Database) Begin() error

// Rollback aborts the active transaction.
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return fmt.Errorf("Database #%d has no active transaction to roll back",
			db.id)
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit finishes the active transaction.
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return fmt.Errorf("Database #%d has no active transaction to commit",
			db.id)
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// ReminderAdd adds a Reminder to the database. On success, the
// Reminder's ID is filled in.
func (db *Database) ReminderAdd(r *objects.Reminder) error {
	const qid query.ID = query.ReminderAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	var (
		res sql.Result
		now = time.Now()
	)

EXEC_QUERY:
	if res, err = tx.Stmt(stmt).Exec(
		r.Name,
		r.Day,
		r.Month,
		r.Year,
		r.UUID,
		now.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Reminder %q to database: %s\n",
			r.Name,
			err.Error())
		return err
	}

	if r.ID, err = res.LastInsertId(); err != nil {
		db.log.Printf("[CANTHAPPEN] Cannot get ID of freshly added Reminder %q: %s\n",
			r.Name,
			err.Error())
		return err
	}

	r.Changed = now
	status = true
	return nil
} // func (db *Database) ReminderAdd(r *objects.Reminder) error

// ReminderUpdate updates a Reminder's name and date in place.
func (db *Database) ReminderUpdate(r *objects.Reminder) error {
	const qid query.ID = query.ReminderUpdate
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	var now = time.Now()

EXEC_QUERY:
	if _, err = tx.Stmt(stmt).Exec(
		r.Name,
		r.Day,
		r.Month,
		r.Year,
		now.Unix(),
		r.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot update Reminder %d (%q): %s\n",
			r.ID,
			r.Name,
			err.Error())
		return err
	}

	r.Changed = now
	status = true
	return nil
} // func (db *Database) ReminderUpdate(r *objects.Reminder) error

// ReminderDelete removes the Reminder with the given ID from the
// database. Its Notifications are removed by the cascading foreign key.
func (db *Database) ReminderDelete(id int64) error {
	const qid query.ID = query.ReminderDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

EXEC_QUERY:
	if _, err = tx.Stmt(stmt).Exec(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Reminder %d: %s\n",
			id,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) ReminderDelete(id int64) error

// ReminderGetByID looks up a Reminder by its ID. If no such Reminder
// exists, it returns nil, but no error.
func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error) {
	const qid query.ID = query.ReminderGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Reminder %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			r       = &objects.Reminder{ID: id}
			changed int64
		)

		if err = rows.Scan(&r.Name, &r.Day, &r.Month, &r.Year, &r.UUID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Changed = time.Unix(changed, 0)
		return r, nil
	}

	return nil, nil
} // func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error)

// ReminderGetAll fetches all Reminders, ordered by date, then name.
func (db *Database) ReminderGetAll() ([]objects.Reminder, error) {
	const qid query.ID = query.ReminderGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query all Reminders: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var reminders = make([]objects.Reminder, 0, 16)

	for rows.Next() {
		var (
			r       objects.Reminder
			changed int64
		)

		if err = rows.Scan(&r.ID, &r.Name, &r.Day, &r.Month, &r.Year, &r.UUID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Changed = time.Unix(changed, 0)
		reminders = append(reminders, r)
	}

	return reminders, nil
} // func (db *Database) ReminderGetAll() ([]objects.Reminder, error)

// NotificationAdd adds a Notification to the database. On success, the
// Notification's ID is filled in.
func (db *Database) NotificationAdd(n *objects.Notification) error {
	const qid query.ID = query.NotificationAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	var (
		res sql.Result
		now = time.Now()
	)

EXEC_QUERY:
	if res, err = tx.Stmt(stmt).Exec(
		n.ReminderID,
		n.Kind,
		n.Enabled,
		n.TriggerTime.Unix(),
		n.AlarmID,
		now.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Notification (%s) for Reminder %d: %s\n",
			n.Kind,
			n.ReminderID,
			err.Error())
		return err
	}

	if n.ID, err = res.LastInsertId(); err != nil {
		db.log.Printf("[CANTHAPPEN] Cannot get ID of freshly added Notification: %s\n",
			err.Error())
		return err
	}

	n.Changed = now
	status = true
	return nil
} // func (db *Database) NotificationAdd(n *objects.Notification) error

// NotificationSetTrigger stores the computed trigger time and the alarm
// ID the Notification was scheduled under.
func (db *Database) NotificationSetTrigger(n *objects.Notification, when time.Time, alarmID int64) error {
	const qid query.ID = query.NotificationSetTrigger
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	var now = time.Now()

EXEC_QUERY:
	if _, err = tx.Stmt(stmt).Exec(when.Unix(), alarmID, now.Unix(), n.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set trigger on Notification %d: %s\n",
			n.ID,
			err.Error())
		return err
	}

	n.TriggerTime = when
	n.AlarmID = alarmID
	n.Changed = now
	status = true
	return nil
} // func (db *Database) NotificationSetTrigger(n *objects.Notification, when time.Time, alarmID int64) error

// NotificationDeleteByReminder removes all Notifications belonging to
// the given Reminder.
func (db *Database) NotificationDeleteByReminder(reminderID int64) error {
	const qid query.ID = query.NotificationDeleteByReminder
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

EXEC_QUERY:
	if _, err = tx.Stmt(stmt).Exec(reminderID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Notifications of Reminder %d: %s\n",
			reminderID,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) NotificationDeleteByReminder(reminderID int64) error

// NotificationGetByID looks up a single Notification, joined with the
// Reminder data needed to render and reschedule it. Returns nil if no
// such Notification exists.
func (db *Database) NotificationGetByID(id int64) (*objects.Upcoming, error) {
	const qid query.ID = query.NotificationGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Notification %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			u                = &objects.Upcoming{}
			k                uint8
			trigger, changed int64
		)

		u.ID = id

		if err = rows.Scan(
			&u.ReminderID,
			&k,
			&u.Enabled,
			&trigger,
			&u.AlarmID,
			&changed,
			&u.Name,
			&u.Day,
			&u.Month); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		u.Kind = kind.Kind(k)
		u.TriggerTime = time.Unix(trigger, 0)
		u.Changed = time.Unix(changed, 0)
		return u, nil
	}

	return nil, nil
} // func (db *Database) NotificationGetByID(id int64) (*objects.Upcoming, error)

// NotificationGetByReminder fetches all Notifications that belong to
// the given Reminder.
func (db *Database) NotificationGetByReminder(reminderID int64) ([]objects.Notification, error) {
	const qid query.ID = query.NotificationGetByReminder
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(reminderID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Notifications of Reminder %d: %s\n",
			reminderID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var notifications = make([]objects.Notification, 0, 3)

	for rows.Next() {
		var (
			n                = objects.Notification{ReminderID: reminderID}
			k                uint8
			trigger, changed int64
		)

		if err = rows.Scan(&n.ID, &k, &n.Enabled, &trigger, &n.AlarmID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		n.Kind = kind.Kind(k)
		n.TriggerTime = time.Unix(trigger, 0)
		n.Changed = time.Unix(changed, 0)
		notifications = append(notifications, n)
	}

	return notifications, nil
} // func (db *Database) NotificationGetByReminder(reminderID int64) ([]objects.Notification, error)

// NotificationGetAll fetches all Notifications, joined with the
// Reminder data needed to render them, ordered by trigger time.
func (db *Database) NotificationGetAll() ([]objects.Upcoming, error) {
	const qid query.ID = query.NotificationGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query all Notifications: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var upcoming = make([]objects.Upcoming, 0, 16)

	for rows.Next() {
		var (
			u                objects.Upcoming
			k                uint8
			trigger, changed int64
		)

		if err = rows.Scan(
			&u.ID,
			&u.ReminderID,
			&k,
			&u.Enabled,
			&trigger,
			&u.AlarmID,
			&changed,
			&u.Name,
			&u.Day,
			&u.Month); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		u.Kind = kind.Kind(k)
		u.TriggerTime = time.Unix(trigger, 0)
		u.Changed = time.Unix(changed, 0)
		upcoming = append(upcoming, u)
	}

	return upcoming, nil
} // func (db *Database) NotificationGetAll() ([]objects.Upcoming, error)
