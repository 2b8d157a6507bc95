package cubedcarac

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the package logger; main may replace its formatter or output.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetDebug toggles Debug and the logger level together.
func SetDebug(on bool) {
	Debug = on
	if on {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Logger.Debugf(format, args...)
}

var once sync.Once

func DebugLogOnce(format string, args ...interface{}) {
	if !Debug {
		return
	}
	once.Do(func() {
		Logger.Debugf(format, args...)
	})
}
