package main

import (
	"os"
	"time"

	"zpm/errors"
	"zpm/logging"
	"zpm/runtime"
)

// BatchMode executes a script file line by line on rt. It stops at the
// first error, which carries the line number it occurred on.
func BatchMode(rt runtime.LanguageRuntime, filePath string, logger logging.Logger) error {
	logger = logger.WithComponent("batch")

	file, err := os.Open(filePath)
	if err != nil {
		return errors.NewFileNotFoundError(filePath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("failed to close script", logging.StringField("path", filePath), logging.Field("error", err))
		}
	}()

	start := time.Now()
	logger.Info("script opened",
		logging.StringField("path", filePath),
		logging.StringField("backend", rt.GetName()))

	stats, err := runtime.ExecuteScript(rt, file)
	if err != nil {
		if execErr, ok := errors.AsExecutionError(err); ok {
			logger.ErrorExecution(execErr, logging.StringField("path", filePath))
		}
		return err
	}

	logger.Info("script finished",
		logging.StringField("path", filePath),
		logging.IntField("lines", stats.Lines),
		logging.IntField("statements", stats.Statements),
		logging.DurationField("elapsed", time.Since(start)))
	return nil
}
