// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 18:21:39 krylon>

// Package backend implements the heart of the application, the part
// that keeps the database, the alarms, and the desktop notifications
// in agreement with each other.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
	"github.com/robfig/cron/v3"
)

const (
	notifyObj     = "org.freedesktop.Notifications"
	notifyIntf    = "org.freedesktop.Notifications" // nolint: deadcode,unused,varcheck
	notifyPath    = "/org/freedesktop/Notifications"
	notifyMethod  = "org.freedesktop.Notifications.Notify"
	notifyTimeout = 10000 // milliseconds
	queueDepth    = 5
	resyncSpec    = "@midnight"
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the Timekeeper, the clients, and the desktop.
type Daemon struct {
	log      *log.Logger
	pool     *database.Pool
	bus      *dbus.Conn
	mgr      *Manager
	clock    *Timekeeper
	crontab  *cron.Cron
	lock     sync.RWMutex
	active   bool
	Queue    chan objects.Alert
	web      http.Server
	router   *mux.Router
	dnssd    *zeroconf.Server
	hostname string
	idLock   sync.Mutex
	idCnt    int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is
// required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			active:  true,
			Queue:   make(chan objects.Alert, queueDepth),
			router:  mux.NewRouter(),
			crontab: cron.New(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(4); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.clock, err = NewTimekeeper(d.Queue); err != nil {
		d.log.Printf("[ERROR] Cannot initialize Timekeeper: %s\n",
			err.Error())
		return nil, err
	} else if d.mgr, err = NewManager(d.pool, d.clock); err != nil {
		d.log.Printf("[ERROR] Cannot initialize Manager: %s\n",
			err.Error())
		return nil, err
	}

	if d.bus, err = dbus.SessionBus(); err != nil {
		// Without the bus we cannot post notifications, but we can
		// still keep the schedule, so this is not fatal.
		d.log.Printf("[WARN] Failed to connect to DBus session bus: %s\n",
			err.Error())
		d.bus = nil
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[WARN] Cannot determine hostname: %s\n",
			err.Error())
		d.hostname = "localhost"
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if _, err = d.crontab.AddFunc(resyncSpec, d.mgr.Reconcile); err != nil {
		d.log.Printf("[ERROR] Cannot register daily resync job: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		d.log.Printf("[WARN] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	d.crontab.Start()

	go d.notifyLoop()
	go d.serveHTTP()

	// Alarms do not survive a restart, the database does. Rebuild.
	go d.mgr.Reconcile()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// Manager returns the Daemon's lifecycle Manager.
func (d *Daemon) Manager() *Manager {
	return d.mgr
} // func (d *Daemon) Manager() *Manager

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	<-d.crontab.Stop().Done()
	d.clock.Clear()

	if d.dnssd != nil {
		d.dnssd.Shutdown()
	}

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var (
		err  error
		tick = time.NewTicker(time.Second * 2)
	)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case a := <-d.Queue:
			var title, _ = a.Payload()
			d.log.Printf("[DEBUG] Alarm %d fired: %s\n",
				a.AlarmID,
				title)

			if err = d.notify(&a); err != nil {
				d.log.Printf("[ERROR] Failed to post notification %q: %s\n",
					title,
					err.Error())
			}

			// Birthdays come around again next year.
			d.mgr.Rearm(a.AlarmID)
		}
	}
} // func (d *Daemon) notifyLoop()

// notify posts one desktop notification. If we have no connection to
// the session bus, i.e. we are not permitted to notify, delivery is
// skipped silently - logged, not retried.
func (d *Daemon) notify(a *objects.Alert) error {
	if d.bus == nil {
		d.log.Printf("[INFO] No session bus, suppressing notification for alarm %d\n",
			a.AlarmID)
		return nil
	}

	var (
		err        error
		obj        = d.bus.Object(notifyObj, notifyPath)
		head, body string
	)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	head, body = a.Payload()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(a.AlarmID),
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(uint8(2)),
		},
		int32(notifyTimeout),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(a *objects.Alert) error
