// /home/krylon/go/src/github.com/blicero/mnemosyne/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-12 17:28:02 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE reminder (
    id      INTEGER PRIMARY KEY,
    name    TEXT NOT NULL,
    day     INTEGER NOT NULL,
    month   INTEGER NOT NULL,
    year    INTEGER NOT NULL DEFAULT 0,
    uuid    TEXT UNIQUE NOT NULL,
    changed INTEGER NOT NULL,
    CHECK (day BETWEEN 1 AND 31),
    CHECK (month BETWEEN 1 AND 12)
)
`,
	"CREATE INDEX reminder_date_idx ON reminder (month, day)",
	`
CREATE TABLE notification (
    id           INTEGER PRIMARY KEY,
    reminder_id  INTEGER NOT NULL,
    kind         INTEGER NOT NULL,
    enabled      INTEGER NOT NULL DEFAULT 1,
    trigger_time INTEGER NOT NULL DEFAULT 0,
    alarm_id     INTEGER NOT NULL DEFAULT 0,
    changed      INTEGER NOT NULL,
    UNIQUE (reminder_id, kind),
    FOREIGN KEY (reminder_id) REFERENCES reminder (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX notification_rem_idx ON notification (reminder_id)",
	"CREATE INDEX notification_trigger_idx ON notification (trigger_time)",
}
