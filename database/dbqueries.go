// /home/krylon/go/src/github.com/blicero/mnemosyne/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-18 18:55:31 krylon>

package database

import "github.com/blicero/mnemosyne/database/query"

var dbQueries = map[query.ID]string{
	query.ReminderAdd: `
INSERT INTO reminder (name, day, month, year, uuid, changed)
VALUES               (   ?,   ?,     ?,    ?,    ?,       ?)
`,
	query.ReminderUpdate: `
UPDATE reminder
SET name = ?, day = ?, month = ?, year = ?, changed = ?
WHERE id = ?
`,
	query.ReminderDelete: "DELETE FROM reminder WHERE id = ?",
	query.ReminderGetByID: `
SELECT
    name,
    day,
    month,
    year,
    uuid,
    changed
FROM reminder
WHERE id = ?
`,
	query.ReminderGetAll: `
SELECT
    id,
    name,
    day,
    month,
    year,
    uuid,
    changed
FROM reminder
ORDER BY month, day, name
`,
	query.NotificationAdd: `
INSERT INTO notification (reminder_id, kind, enabled, trigger_time, alarm_id, changed)
VALUES                   (          ?,    ?,       ?,            ?,        ?,       ?)
`,
	query.NotificationSetTrigger: `
UPDATE notification
SET trigger_time = ?, alarm_id = ?, changed = ?
WHERE id = ?
`,
	query.NotificationDeleteByReminder: "DELETE FROM notification WHERE reminder_id = ?",
	query.NotificationGetByID: `
SELECT
    n.reminder_id,
    n.kind,
    n.enabled,
    n.trigger_time,
    n.alarm_id,
    n.changed,
    r.name,
    r.day,
    r.month
FROM notification n
INNER JOIN reminder r ON n.reminder_id = r.id
WHERE n.id = ?
`,
	query.NotificationGetByReminder: `
SELECT
    id,
    kind,
    enabled,
    trigger_time,
    alarm_id,
    changed
FROM notification
WHERE reminder_id = ?
ORDER BY kind
`,
	query.NotificationGetAll: `
SELECT
    n.id,
    n.reminder_id,
    n.kind,
    n.enabled,
    n.trigger_time,
    n.alarm_id,
    n.changed,
    r.name,
    r.day,
    r.month
FROM notification n
INNER JOIN reminder r ON n.reminder_id = r.id
ORDER BY n.trigger_time
`,
}
