/*
Package logger defines the logging interface the mvhsync library writes to. Any logger (logrus, zap, a test
spy) can be adapted to it and installed with mvhsync.SetLogger.
*/
package logger

type Logger interface {
	Errorf(format string, args ...interface{})
	Error(args ...interface{})
	Warnf(format string, args ...interface{})
	Warn(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
	Debugf(format string, args ...interface{})
	Debug(args ...interface{})
	WithFields(fields map[string]interface{}) Logger
}
