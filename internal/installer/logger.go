package installer

// Logger receives progress and diagnostic messages from the install
// pipeline. Messages take alternating key/value pairs after the text, e.g.
//
//	logger.Debug("following redirect", "status", 302, "location", next)
//
// Info carries the lines a user expects to see in the job log; Debug
// carries causes that are hidden behind generic errors, such as why the
// rpk version probe failed.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// discardLogger drops everything; used when Config.Logger is nil.
type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}

func defaultLogger() Logger {
	return discardLogger{}
}
