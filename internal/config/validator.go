package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// nameserver accepts "host" or "host:port"
	_ = validate.RegisterValidation("nameserver", func(fl validator.FieldLevel) bool {
		return IsValidNameserver(fl.Field().String())
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.StructNamespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// IsValidNameserver reports whether addr is an IP or hostname, optionally with a port.
func IsValidNameserver(addr string) bool {
	if addr == "" {
		return false
	}
	host := addr
	if h, port, err := net.SplitHostPort(addr); err == nil {
		if port == "" {
			return false
		}
		host = h
	}
	if net.ParseIP(host) != nil {
		return true
	}
	return host != "" && !strings.ContainsAny(host, " /:")
}

func trimNamespace(ns string) string {
	return strings.TrimPrefix(ns, "GlobalConfig.")
}
