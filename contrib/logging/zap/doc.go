// Package zap routes cqlbridge log messages to a go.uber.org/zap logger.
//
// # Basic Usage
//
//	logger, _ := zap.NewProduction()
//	session := cqlbridge.NewSession(driver,
//	    cqlbridge.WithLogger(zaplog.New(logger.Sugar())),
//	)
//
// Key/value pairs are passed through to the SugaredLogger *w methods, so
// they appear as structured fields.
package zap
