package logging

import "log/slog"

// Attr aliases slog.Attr so call sites only import this package.
type Attr = slog.Attr

// String builds a string attribute.
func String(key, value string) Attr { return slog.String(key, value) }

// Int builds an int attribute.
func Int(key string, value int) Attr { return slog.Int(key, value) }

// Int64 builds an int64 attribute.
func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

// Float64 builds a float64 attribute.
func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

// Bool builds a bool attribute.
func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

// Error builds the conventional error attribute. A nil error produces an
// empty attribute that slog drops.
func Error(err error) Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
