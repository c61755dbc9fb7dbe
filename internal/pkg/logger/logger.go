package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production mode emits JSON, otherwise a
// human-readable development config is used. The returned logger is also
// installed as the zap global so shared helpers can reach it.
func New(isProduction bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if isProduction {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
