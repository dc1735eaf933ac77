// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package logutil provides the structured-logging call shape Erigon uses
// throughout turbo/snapshotsync ("log.Info(msg, key, val, ...)"), backed by
// go.uber.org/zap's SugaredLogger since erigon-lib/log/v3 itself isn't in
// our dependency surface.
package logutil

import "go.uber.org/zap"

// Logger is the narrow interface the snapshot chunkers and restorer log
// through.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// New wraps a *zap.SugaredLogger to satisfy Logger.
func New(sugared *zap.SugaredLogger) Logger { return zapLogger{sugared} }

// NewProduction returns a Logger backed by zap's production config.
func NewProduction() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(l.Sugar()), nil
}

// Noop discards everything; used as the default in tests and anywhere a
// caller doesn't wire a real logger.
var Noop Logger = noopLogger{}

type zapLogger struct{ s *zap.SugaredLogger }

func (z zapLogger) Info(msg string, kv ...interface{})  { z.s.Infow(msg, kv...) }
func (z zapLogger) Warn(msg string, kv ...interface{})  { z.s.Warnw(msg, kv...) }
func (z zapLogger) Error(msg string, kv ...interface{}) { z.s.Errorw(msg, kv...) }
func (z zapLogger) Debug(msg string, kv ...interface{}) { z.s.Debugw(msg, kv...) }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
