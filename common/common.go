// /home/krylon/go/src/github.com/blicero/mnemosyne/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2025-01-24 18:06:41 krylon>

// Package common provides constants and functions used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/blicero/krylib"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

//go:generate ./build_time_stamp.pl

// Debug, if set, causes the application to log more verbosely.
const Debug = true

// AppName is the name we identify ourselves by, Version is the version
// number, BuildStamp the time the running binary was built.
const (
	AppName    = "Mnemosyne"
	Version    = "0.3.1"
	BuildStamp = "2025-01-24 18:01:57"
)

// Assorted timestamp formats.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatDate      = "2006-01-02"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
)

// DefaultPort is the TCP port the backend listens on unless told otherwise.
const DefaultPort = 7202

// NotificationHour is the hour of the day (local time) at which
// notifications for birthdays are meant to go off.
const NotificationHour = 9

// BaseDir is the folder where all application-specific files are stored.
// LogPath and DbPath are the log file and database, respectively.
var (
	BaseDir = filepath.Join(os.Getenv("HOME"), ".mnemosyne.d")
	LogPath = filepath.Join(BaseDir, "mnemosyne.log")
	DbPath  = filepath.Join(BaseDir, "mnemosyne.db")
)

// SetBaseDir sets the BaseDir and related variables and makes sure the
// directory exists.
func SetBaseDir(path string) error {
	BaseDir = path
	LogPath = filepath.Join(BaseDir, "mnemosyne.log")
	DbPath = filepath.Join(BaseDir, "mnemosyne.db")

	return InitApp()
} // func SetBaseDir(path string) error

// InitApp performs any steps required to initialize the application.
func InitApp() error {
	var (
		err error
		ex  bool
	)

	if ex, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking if BaseDir %s exists: %s",
			BaseDir,
			err.Error())
	} else if !ex {
		if err = os.MkdirAll(BaseDir, 0755); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// LogLevels are the log levels the application supports.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

func minLogLevel() logutils.LogLevel {
	if Debug {
		return "TRACE"
	}

	return "INFO"
} // func minLogLevel() logutils.LogLevel

// GetLogger returns a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err error
		fh  *os.File
	)

	if err = InitApp(); err != nil {
		return nil, err
	} else if fh, err = os.OpenFile(LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: minLogLevel(),
		Writer:   io.MultiWriter(os.Stdout, fh),
	}

	var logger = log.New(
		filter,
		fmt.Sprintf("%s ", dom),
		log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a fresh random UUID in string form.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
