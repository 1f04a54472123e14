// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// size of the backlog kept for the log page
const printsBacklog = 100

// Logger hands log lines to the UI through Prints and mirrors every line to
// a logrus logger, which discards output until a file is attached.
type Logger struct {
	Prints chan string

	mirror *logrus.Logger
	file   *os.File
}

var _ LoggerInterface = (*Logger)(nil)

func Init() *Logger {
	mirror := logrus.New()
	mirror.SetOutput(io.Discard)
	mirror.SetFormatter(&logrus.JSONFormatter{})

	return &Logger{
		Prints: make(chan string, printsBacklog),
		mirror: mirror,
	}
}

// AttachFile mirrors all log lines as JSON to the file at path.
func (l *Logger) AttachFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if l.mirror == nil {
		l.mirror = logrus.New()
		l.mirror.SetFormatter(&logrus.JSONFormatter{})
	}
	l.mirror.SetOutput(f)
	l.file = f
	return nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if l.mirror != nil {
		l.mirror.SetOutput(io.Discard)
	}
	return err
}

func (l *Logger) Print(s string) {
	if l.mirror != nil {
		l.mirror.Info(s)
	}
	l.push(s)
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	if l.mirror != nil {
		l.mirror.WithFields(logrus.Fields{
			"source": source,
		}).Error(err)
	}
	l.push(fmt.Sprintf("Error(%s) -> %s", source, err.Error()))
}

// push never blocks: when nobody drains the channel the line only reaches
// the mirror.
func (l *Logger) push(s string) {
	if l.Prints == nil {
		return
	}
	select {
	case l.Prints <- s:
	default:
	}
}
