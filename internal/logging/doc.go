// Package logging builds the slog loggers used across Slidecast.
//
// Two handlers are available: a console handler producing
// "TIME LEVEL component: message key=value" lines (with colorized levels
// when attached to a terminal) and a JSON handler for machine consumption.
// Component loggers carry a "component" attribute that the console handler
// folds into the line prefix.
package logging
