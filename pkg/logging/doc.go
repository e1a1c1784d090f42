// Package logging provides structured logging configuration for the mock API.
//
// This package wraps log/slog to provide consistent logging across all
// components. It supports configurable log levels and output formats.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 8310)
//	logger.Error("callback dispatch failed", "error", err)
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
