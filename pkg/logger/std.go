// Copyright 2020 Envoyproxy Authors
//
//   Licensed under the Apache License, Version 2.0 (the "License");
//   you may not use this file except in compliance with the License.
//   You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
//   Unless required by applicable law or agreed to in writing, software
//   distributed under the License is distributed on an "AS IS" BASIS,
//   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//   See the License for the specific language governing permissions and
//   limitations under the License.
package logger

import (
	"io"
	"os"

	"github.com/envoyproxy/go-control-plane/pkg/log"
	"github.com/sirupsen/logrus"
)

var _ log.Logger = (*Std)(nil)

// NewStd returns a logger writing to stderr. Debugf only outputs anything
// when debug is true.
func NewStd(debug bool) *Std {
	return NewStdTo(os.Stderr, debug)
}

func NewStdTo(out io.Writer, debug bool) *Std {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return &Std{Debug: debug, entry: logrus.NewEntry(l)}
}

// Std implements the go-control-plane log.Logger on top of logrus.
type Std struct {
	Debug bool
	entry *logrus.Entry
}

// With returns a logger that adds key=value to every line.
func (l *Std) With(key string, value interface{}) *Std {
	return &Std{Debug: l.Debug, entry: l.get().WithField(key, value)}
}

func (l *Std) Debugf(format string, args ...interface{}) {
	if l.Debug {
		l.get().Debugf(format, args...)
	}
}

func (l *Std) Infof(format string, args ...interface{}) {
	l.get().Infof(format, args...)
}

func (l *Std) Warnf(format string, args ...interface{}) {
	l.get().Warnf(format, args...)
}

func (l *Std) Errorf(format string, args ...interface{}) {
	l.get().Errorf(format, args...)
}

func (l *Std) Fatalf(format string, args ...interface{}) {
	l.get().Fatalf(format, args...)
}

// The zero Std logs through the logrus standard logger.
func (l *Std) get() *logrus.Entry {
	if l.entry == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return l.entry
}
