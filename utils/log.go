// Package utils holds process-level helpers shared by the tracker binaries:
// currently the rotating-file logger wired into the pitaya logging facade.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"github.com/topfreegames/pitaya/v3/pkg/logger/interfaces"
	logruswrapper "github.com/topfreegames/pitaya/v3/pkg/logger/logrus"
)

const (
	logMaxAge   = 7 * 24 * time.Hour
	logRotation = 24 * time.Hour
)

type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	ts := entry.Time.Format(time.DateTime)
	level := strings.ToLower(entry.Level.String())
	file := "?"
	line := 0
	if entry.Caller != nil {
		file = filepath.Base(entry.Caller.File)
		line = entry.Caller.Line
	}
	return []byte(fmt.Sprintf("%s [%s] %s:%d %s\n", ts, level, file, line, entry.Message)), nil
}

// Logger builds the process logger writing daily-rotated files under dir.
// Pass the result to the pitaya logger facade at startup.
func Logger(dir string, level logrus.Level) (interfaces.Logger, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	name := filepath.Base(os.Args[0])
	pattern := filepath.Join(dir, name+"-%Y%m%d.log")
	writer, err := rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(logMaxAge),
		rotatelogs.WithRotationTime(logRotation),
	)
	if err != nil {
		return nil, fmt.Errorf("log writer: %w", err)
	}

	l := logrus.New()
	l.SetOutput(writer)
	l.SetReportCaller(true)
	l.Formatter = lineFormatter{}
	l.SetLevel(level)
	return logruswrapper.NewWithFieldLogger(l), nil
}
