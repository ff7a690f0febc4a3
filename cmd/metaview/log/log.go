// Package log provides the server's leveled logger.
package log

import (
	"fmt"
	"io"
	glog "log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var DisableColor bool

var (
	fatalColor   = color.New(color.FgRed, color.Bold)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
)

type logger struct {
	log      *glog.Logger
	logDebug bool
	logTrace bool
}

var std *logger

func Init(out io.Writer, logDebug, logTrace bool) {
	std = &logger{
		log:      glog.New(out, "", 0),
		logDebug: logDebug,
		logTrace: logTrace,
	}
	if f, ok := out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		DisableColor = true
	}
}

func Fatal(format string, v ...interface{}) {
	printf(fatalColor, "FATAL", format, v...)
}

func Error(format string, v ...interface{}) {
	printf(errorColor, "ERROR", format, v...)
}

func Warning(format string, v ...interface{}) {
	printf(warningColor, "WARNING", format, v...)
}

func Info(format string, v ...interface{}) {
	printf(nil, "INFO", format, v...)
}

func Debug(format string, v ...interface{}) {
	if std == nil || (!std.logDebug && !std.logTrace) {
		return
	}
	printf(nil, "DEBUG", format, v...)
}

func Trace(format string, v ...interface{}) {
	if std == nil || !std.logTrace {
		return
	}
	printf(nil, "TRACE", format, v...)
}

func printf(c *color.Color, level string, format string, v ...interface{}) {
	if std == nil {
		return
	}
	msg := fmt.Sprintf(format, v...)
	now := time.Now().UTC().Format("2006-01-02 15:04:05 MST")
	if DisableColor || c == nil {
		std.log.Printf("%s  %s  %s", now, level+":", msg)
	} else {
		cf := c.SprintFunc()
		std.log.Printf("%s  %s  %s", now, cf(level+":"), msg)
	}
}
