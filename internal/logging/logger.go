// Package logging defines the leveled logger used by the document pass and
// the CLI, plus module-scoped helpers. Core parsers never log.
package logging

import (
	"context"
	"maps"
)

// Logger mirrors the contract of github.com/goliatone/go-logger so its
// loggers plug in through a thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// Provider exposes named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

const (
	RootModule = "mdtree"
	LintModule = "mdtree.lint"
	CLIModule  = "mdtree.cli"
)

// ModuleLogger returns the provider's logger for module with a "module"
// field attached, or a no-op logger when provider is nil.
func ModuleLogger(provider Provider, module string) Logger {
	if module == "" {
		module = RootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when logger supports them and returns logger
// unchanged otherwise.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// WithDocument scopes logger to one document path.
func WithDocument(logger Logger, path string) Logger {
	if path == "" {
		return logger
	}
	return WithFields(logger, map[string]any{"document": path})
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
