package configs

import (
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func Logger() *zap.SugaredLogger {
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	}
	return logger
}
