// Package logger wraps zerolog with a small structured-logging API shared by
// the orchestration and pipeline packages.
//
// Loggers are tagged with a component name and carry structured fields as
// map[string]interface{}. A process-wide global logger backs the package-level
// convenience functions and the named-logger registry.
//
//	log := logger.Get("pipeline")
//	log.Info("transcription complete", logger.Fields(
//	    logger.FieldRecordingID, id,
//	    logger.FieldProvider, "openai",
//	))
package logger
