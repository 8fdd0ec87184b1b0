package sortalgo

import "log"

// Logger is the ambient logging contract every sorter accepts, adapted
// from the teacher's reconcile package: a four-level formatted logger with
// no structured fields.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type defaultLogger struct{}

func (defaultLogger) Infof(format string, args ...interface{})  { log.Printf("[INFO] "+format, args...) }
func (defaultLogger) Warnf(format string, args ...interface{})  { log.Printf("[WARN] "+format, args...) }
func (defaultLogger) Errorf(format string, args ...interface{}) { log.Printf("[ERROR] "+format, args...) }
func (defaultLogger) Debugf(format string, args ...interface{}) { log.Printf("[DEBUG] "+format, args...) }

// NewDefaultLogger returns a Logger that writes to the standard log package.
func NewDefaultLogger() Logger {
	return defaultLogger{}
}
