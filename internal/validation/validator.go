// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package validation wraps a shared go-playground/validator instance.
//
// Field names in error messages come from the `query` tag for request
// parameter structs and the `koanf` tag for configuration structs, so the
// caller sees the name they actually typed:
//
//	type playsParams struct {
//	    Year int `query:"year" validate:"required,gte=1869,lte=2100"`
//	}
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    respondMessage(w, http.StatusBadRequest, verr.Error())
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error is the combined result of validating a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the process-wide validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		// Registration only fails on an empty tag or nil func.
		_ = validate.RegisterValidation("routepath", isRoutePath)
	})
	return validate
}

// ValidateStruct returns nil or an *Error describing every failed rule.
func ValidateStruct(s interface{}) *Error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return out
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "koanf"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// isRoutePath accepts absolute URL paths without a trailing slash, query or
// whitespace. "/" alone is allowed.
func isRoutePath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if p == "/" {
		return true
	}
	return strings.HasPrefix(p, "/") &&
		!strings.HasSuffix(p, "/") &&
		!strings.ContainsAny(p, "?# \t\r\n")
}

var simpleMessages = map[string]string{
	"required":      "%s is required",
	"routepath":     "%s must be an absolute path without a trailing slash",
	"url":           "%s must be a valid URL",
	"hostname_port": "%s must be host:port",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
	"dive":  "%s has an invalid element",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := simpleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
