// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 18:17:02 krylon>

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// subTimeout is how long a subscriber is left hanging before we answer
// with the current list even though nothing has changed.
const subTimeout = time.Second * 25

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/reminder/add", d.handleReminderAdd)
	d.router.HandleFunc("/reminder/all", d.handleReminderGetAll)
	d.router.HandleFunc("/reminder/subscribe", d.handleReminderSubscribe)
	d.router.HandleFunc("/reminder/upcoming", d.handleUpcomingGetAll)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/get", d.handleReminderGet)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/days", d.handleReminderDays)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/update", d.handleReminderUpdate)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/delete", d.handleReminderDelete)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

// reminderFromForm extracts a Reminder and the selected notification
// kinds from the submitted form data.
func reminderFromForm(r *http.Request) (*objects.Reminder, []kind.Kind, error) {
	var (
		err error
		rem objects.Reminder
	)

	if err = r.ParseForm(); err != nil {
		return nil, nil, fmt.Errorf("Cannot parse form data: %s",
			err.Error())
	}

	rem.Name = r.PostFormValue("name")

	if rem.Day, err = strconv.Atoi(r.PostFormValue("day")); err != nil {
		return nil, nil, fmt.Errorf("Cannot parse day %q: %s",
			r.PostFormValue("day"),
			err.Error())
	} else if rem.Month, err = strconv.Atoi(r.PostFormValue("month")); err != nil {
		return nil, nil, fmt.Errorf("Cannot parse month %q: %s",
			r.PostFormValue("month"),
			err.Error())
	}

	if ystr := r.PostFormValue("year"); ystr != "" {
		if rem.Year, err = strconv.Atoi(ystr); err != nil {
			return nil, nil, fmt.Errorf("Cannot parse year %q: %s",
				ystr,
				err.Error())
		}
	}

	var kinds = make([]kind.Kind, 0, len(r.PostForm["notify"]))

	for _, kstr := range r.PostForm["notify"] {
		var k kind.Kind

		if k, err = kind.Parse(kstr); err != nil {
			return nil, nil, err
		}

		kinds = append(kinds, k)
	}

	return &rem, kinds, nil
} // func reminderFromForm(r *http.Request) (*objects.Reminder, []kind.Kind, error)

func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		rem      *objects.Reminder
		kinds    []kind.Kind
		response = objects.Response{ID: d.getID()}
	)

	if rem, kinds, err = reminderFromForm(r); err != nil {
		d.log.Printf("[ERROR] %s\n", err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if err = d.mgr.ReminderAdd(rem, kinds); err != nil {
		d.log.Printf("[ERROR] Cannot add Reminder %q: %s\n",
			rem.Name,
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Message = rem.UUID
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		reminders []objects.Reminder
		buf       []byte
	)

	if reminders, err = d.mgr.ReminderGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Reminders: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(reminders); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Reminder list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleUpcomingGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		upcoming []objects.Upcoming
		buf      []byte
	)

	if upcoming, err = d.mgr.UpcomingGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load upcoming Notifications: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(upcoming); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Notification list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleUpcomingGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderSubscribe(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		reminders []objects.Reminder
		buf       []byte
	)

	var id, ch = d.mgr.Subscribe()
	defer d.mgr.Unsubscribe(id)

	select {
	case reminders = <-ch:
		// A mutation happened, send the fresh snapshot.
	case <-time.After(subTimeout):
		if reminders, err = d.mgr.ReminderGetAll(); err != nil {
			d.log.Printf("[ERROR] Cannot load Reminders: %s\n",
				err.Error())
		}
	case <-r.Context().Done():
		return
	}

	if buf, err = ffjson.Marshal(reminders); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Reminder list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleReminderSubscribe(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		det        *objects.Detail
		buf        []byte
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)
	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if det, err = d.mgr.ReminderGet(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Reminder #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if det == nil {
		msg = fmt.Sprintf("Reminder #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if buf, err = ffjson.Marshal(det); err != nil {
		msg = fmt.Sprintf("Cannot serialize Reminder #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
	return

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDays(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		det        *objects.Detail
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)
	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if det, err = d.mgr.ReminderGet(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Reminder #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if det == nil {
		msg = fmt.Sprintf("Reminder #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = strconv.Itoa(det.DaysUntil)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleReminderDays(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		rem        *objects.Reminder
		kinds      []kind.Kind
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)
	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if rem, kinds, err = reminderFromForm(r); err != nil {
		d.log.Printf("[ERROR] %s\n", err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	rem.ID = id

	if err = d.mgr.ReminderUpdate(rem, kinds); err != nil {
		if errors.Is(err, ErrNotFound) {
			msg = fmt.Sprintf("Reminder #%d was not found in database", id)
			d.log.Printf("[DEBUG] %s\n", msg)
		} else {
			msg = fmt.Sprintf("Cannot update Reminder %d (%q): %s",
				id,
				rem.Name,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
		}
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleReminderUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)
	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = d.mgr.ReminderDelete(id); err != nil {
		msg = fmt.Sprintf("Failed to delete Reminder %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("Reminder %d was deleted", id)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
