// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package logging is a thin wrapper around logrus used by the store and
// its hooks. It follows the convention that the only legitimate
// process-wide state in this module is a logger: callers that want an
// isolated logger (e.g. for tests) construct one with New; code that
// just wants to log uses the package-level functions, which operate on
// a shared global logger.
package logging

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields.
type Fields = logrus.Fields

// Entry aliases logrus.Entry.
type Entry = logrus.Entry

// Logger is the interface used throughout the store for structured
// logging. It is satisfied by the logrus-backed implementation in this
// package; tests may substitute their own.
type Logger interface {
	Debug(...interface{})
	Debugf(string, ...interface{})

	Info(...interface{})
	Infof(string, ...interface{})

	Warn(...interface{})
	Warnf(string, ...interface{})

	Error(...interface{})
	Errorf(string, ...interface{})

	WithField(key string, value interface{}) *Entry
	WithFields(Fields) *Entry
	WithContext(context.Context) Logger

	SetLevel(string) error
	SetOutput(io.Writer)
	SetJSONFormatter()
	SetTextFormatter()
}

type logger struct {
	entry *logrus.Entry
}

// New creates a new, independent Logger.
func New() Logger {
	l := logrus.New()
	return logger{entry: logrus.NewEntry(l)}
}

func (l logger) WithContext(ctx context.Context) Logger {
	return logger{l.entry.WithContext(ctx)}
}

func (l logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l logger) Info(args ...interface{})                 { l.entry.Info(args...) }
func (l logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l logger) Warn(args ...interface{})                 { l.entry.Warn(args...) }
func (l logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l logger) WithField(key string, value interface{}) *Entry {
	return l.entry.WithField(key, value)
}

func (l logger) WithFields(fields Fields) *Entry {
	return l.entry.WithFields(fields)
}

func (l logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

func (l logger) SetJSONFormatter() {
	l.entry.Logger.SetFormatter(&logrus.JSONFormatter{})
}

func (l logger) SetTextFormatter() {
	l.entry.Logger.SetFormatter(&logrus.TextFormatter{})
}

var globalLogger = New().(logger)

// Global returns the shared package-level logger.
func Global() Logger {
	return globalLogger
}

// WithContext adds a context to the global logger.
func WithContext(ctx context.Context) Logger {
	return globalLogger.WithContext(ctx)
}

func Debug(args ...interface{})                 { globalLogger.Debug(args...) }
func Debugf(format string, args ...interface{}) { globalLogger.Debugf(format, args...) }

func Info(args ...interface{})                 { globalLogger.Info(args...) }
func Infof(format string, args ...interface{}) { globalLogger.Infof(format, args...) }

func Warn(args ...interface{})                 { globalLogger.Warn(args...) }
func Warnf(format string, args ...interface{}) { globalLogger.Warnf(format, args...) }

func Error(args ...interface{})                 { globalLogger.Error(args...) }
func Errorf(format string, args ...interface{}) { globalLogger.Errorf(format, args...) }

// WithField adds a field to the global logger.
func WithField(key string, value interface{}) *Entry {
	return globalLogger.WithField(key, value)
}

// WithFields adds a map of fields to the global logger.
func WithFields(fields Fields) *Entry {
	return globalLogger.WithFields(fields)
}

// SetLevel sets the global logger's level.
func SetLevel(level string) error {
	return globalLogger.SetLevel(level)
}

// SetOutput sets the global logger's output.
func SetOutput(w io.Writer) {
	globalLogger.SetOutput(w)
}

// SetJSONFormatter sets the global logger's formatter to JSON.
func SetJSONFormatter() {
	globalLogger.SetJSONFormatter()
}

// SetTextFormatter sets the global logger's formatter to logrus's
// key=value text format, the human-readable format used by
// interactive tools built on the store.
func SetTextFormatter() {
	globalLogger.SetTextFormatter()
}
