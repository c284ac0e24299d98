package logging

import (
	"github.com/rs/zerolog"
)

// CronLogger adapts a zerolog logger to the cron.Logger interface.
// Scheduler chatter goes to debug; errors stay errors.
type CronLogger struct {
	log zerolog.Logger
}

// NewCronLogger wraps l for use with cron.WithLogger
func NewCronLogger(l zerolog.Logger) CronLogger {
	return CronLogger{log: l}
}

// Info logs routine scheduler messages
func (c CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug().Fields(toFields(keysAndValues...)).Msg(msg)
}

// Error logs scheduler errors, including recovered task panics
func (c CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error().Err(err).Fields(toFields(keysAndValues...)).Msg(msg)
}

// toFields converts key-value pairs to a field map, dropping non-string keys
func toFields(keysAndValues ...interface{}) map[string]interface{} {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(map[string]interface{})
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
