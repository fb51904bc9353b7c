// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 19:02:33 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the backend over HTTP.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/kind"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	addPath      = "/reminder/add"
	allPath      = "/reminder/all"
	upcomingPath = "/reminder/upcoming"
	deletePath   = "/reminder/%d/delete"
)

// Client implements the fundamental communication with the backend.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	c.Server.Scheme = "http"

	return c, nil
} // func NewClient(srv string) (*Client, error)

func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

// SubmitReminder sends one Reminder to the backend, requesting
// notifications of the given kinds.
func (c *Client) SubmitReminder(r *objects.Reminder, kinds []kind.Kind) error {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
		hres   *http.Response
		ores   objects.Response
		values = make(url.Values)
		addr   = *c.Server
	)

	addr.Path = addPath

	values.Set("name", r.Name)
	values.Set("day", strconv.Itoa(r.Day))
	values.Set("month", strconv.Itoa(r.Month))

	if r.Year != 0 {
		values.Set("year", strconv.Itoa(r.Year))
	}

	for _, k := range kinds {
		values.Add("notify", k.String())
	}

	if hres, err = c.Client.PostForm(addr.String(), values); err != nil {
		c.log.Printf("[ERROR] Failed to POST Reminder to %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr.String(),
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr.String(),
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return err
	}

	r.UUID = ores.Message

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr.String(),
		ores.Message)

	return nil
} // func (c *Client) SubmitReminder(r *objects.Reminder, kinds []kind.Kind) error

// FetchReminders asks the backend for all Reminders.
func (c *Client) FetchReminders() ([]objects.Reminder, error) {
	var (
		err       error
		msg       string
		rcvBuf    bytes.Buffer
		hres      *http.Response
		reminders []objects.Reminder
		addr      = *c.Server
	)

	addr.Path = allPath

	if hres, err = c.Client.Get(addr.String()); err != nil {
		c.log.Printf("[ERROR] Failed to GET Reminders from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	} else if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr.String(),
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &reminders); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Reminder list from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	}

	return reminders, nil
} // func (c *Client) FetchReminders() ([]objects.Reminder, error)

// FetchUpcoming asks the backend for all pending Notifications.
func (c *Client) FetchUpcoming() ([]objects.Upcoming, error) {
	var (
		err      error
		msg      string
		rcvBuf   bytes.Buffer
		hres     *http.Response
		upcoming []objects.Upcoming
		addr     = *c.Server
	)

	addr.Path = upcomingPath

	if hres, err = c.Client.Get(addr.String()); err != nil {
		c.log.Printf("[ERROR] Failed to GET Notifications from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	} else if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr.String(),
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &upcoming); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Notification list from %s: %s\n",
			addr.String(),
			err.Error())
		return nil, err
	}

	return upcoming, nil
} // func (c *Client) FetchUpcoming() ([]objects.Upcoming, error)

// DeleteReminder asks the backend to delete the Reminder with the
// given ID.
func (c *Client) DeleteReminder(id int64) error {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
		hres   *http.Response
		ores   objects.Response
		addr   = *c.Server
	)

	addr.Path = fmt.Sprintf(deletePath, id)

	if hres, err = c.Client.Get(addr.String()); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr.String(),
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr.String(),
			err.Error())
		return err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr.String(),
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return err
	}

	return nil
} // func (c *Client) DeleteReminder(id int64) error
