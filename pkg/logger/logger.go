package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu  sync.Mutex
	log = zap.NewNop()
)

// Init builds the process logger. env "production" selects the JSON
// production config, anything else the development console config.
func Init(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	mu.Lock()
	log = l
	mu.Unlock()
	return l, nil
}

// L returns the process logger (a nop logger before Init).
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}
