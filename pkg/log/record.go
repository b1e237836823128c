package log

import (
	"fmt"
	"time"

	"github.com/gookit/color"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// Record is a single message of a ChanLog.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
}

func (r Record) String() string {
	c := color.Cyan
	switch r.Level {
	case LevelWarning:
		c = color.Yellow
	case LevelError:
		c = color.Red
	}
	return fmt.Sprintf("%s %s %s", r.Time.Format(time.TimeOnly), c.Sprintf("%-5s", r.Level), r.Message)
}

// ChanLog sends records to a channel, optionally passing them on to another
// logger. Records are dropped while the channel is full.
type ChanLog struct {
	records chan Record
	next    Logger
	now     func() time.Time
}

func NewChanLog(size int, next Logger) *ChanLog {
	if next == nil {
		next = EmptyLog{}
	}
	return &ChanLog{records: make(chan Record, size), next: next, now: time.Now}
}

func (l *ChanLog) Records() <-chan Record { return l.records }

func (l *ChanLog) put(level Level, msg string) {
	select {
	case l.records <- Record{Time: l.now(), Level: level, Message: msg}:
	default:
	}
}

func (l *ChanLog) Error(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.put(LevelError, msg)
	l.next.Error("%s", msg)
}

func (l *ChanLog) Warning(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.put(LevelWarning, msg)
	l.next.Warning("%s", msg)
}

func (l *ChanLog) Info(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.put(LevelInfo, msg)
	l.next.Info("%s", msg)
}

func (l *ChanLog) Close() error { return l.next.Close() }
