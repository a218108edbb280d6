// Copyright (c) 2026 Tripgate. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Locale Resolution

// WithLocale returns a new context with the routing gateway's resolved locale attached.
func WithLocale(ctx context.Context, locale i18n.Locale) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLocale, locale)
}

// GetLocale retrieves the resolved [i18n.Locale] from the context.
// If the request never passed through the locale router, it returns the default locale.
func GetLocale(ctx context.Context) i18n.Locale {
	locale, ok := ctx.Value(ctxkey.KeyLocale).(i18n.Locale)
	if !ok {
		return i18n.Default()
	}
	return locale
}
