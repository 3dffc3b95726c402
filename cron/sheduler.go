package cron

import (
	"fmt"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules the built-in jobs plus everything registered through
// Register, then starts the scheduler. Registered jobs override built-ins
// with the same name.
func StartCron(log *zap.Logger, builtin map[string]Job) (*robfig.Cron, error) {
	c := robfig.New(robfig.WithChain(robfig.Recover(zapLogger{log})))
	all := Merge(builtin)
	for name, j := range all {
		name, run := name, j.Run
		_, err := c.AddFunc(j.Schedule, func() {
			log.Debug("cron job start", zap.String("job", name))
			run()
		})
		if err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}

// Merge returns builtin overlaid with the registered jobs.
func Merge(builtin map[string]Job) map[string]Job {
	out := make(map[string]Job, len(builtin))
	for k, v := range builtin {
		out[k] = v
	}
	for k, v := range Jobs() {
		out[k] = v
	}
	return out
}

// zapLogger satisfies robfig's Logger so panics in jobs land in the app log.
type zapLogger struct {
	log *zap.Logger
}

func (l zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().With(zap.Error(err)).Errorw(msg, keysAndValues...)
}
