// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/gridiron/internal/database"
	"github.com/tomtom215/gridiron/internal/validation"
)

// Query parameter structs. Field names in validation messages come from
// the query tag.

type conferenceParams struct {
	Conference string `query:"conference" validate:"omitempty,max=64"`
}

type gameParams struct {
	Year int    `query:"year" validate:"required,gte=1869,lte=2100"`
	Week int    `query:"week" validate:"omitempty,gte=1,lte=20"`
	Team string `query:"team" validate:"omitempty,max=100"`
}

func (p gameParams) filter() database.GameFilter {
	return database.GameFilter{Year: p.Year, Week: p.Week, Team: p.Team}
}

type playParams struct {
	Year int    `query:"year" validate:"required,gte=2001,lte=2100"`
	Week int    `query:"week" validate:"required,gte=1,lte=20"`
	Team string `query:"team" validate:"omitempty,max=100"`
}

type seasonStatParams struct {
	Year     int    `query:"year" validate:"required,gte=1869,lte=2100"`
	Team     string `query:"team" validate:"omitempty,max=100"`
	Category string `query:"category" validate:"omitempty,alpha,max=32"`
}

func (p seasonStatParams) filter() database.StatFilter {
	return database.StatFilter{Year: p.Year, Team: p.Team, Category: p.Category}
}

type livePlayParams struct {
	GameID int64 `query:"gameId" validate:"required,gt=0"`
}

// paramError is a 400-class problem with the query string.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

// queryParams reads typed values out of a query string, remembering the
// first parse failure.
type queryParams struct {
	values url.Values
	err    error
}

func newQueryParams(values url.Values) *queryParams {
	return &queryParams{values: values}
}

func (q *queryParams) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *queryParams) intVal(key string) int {
	return int(q.int64Val(key))
}

func (q *queryParams) int64Val(key string) int64 {
	raw := q.str(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && q.err == nil {
		q.err = &paramError{msg: fmt.Sprintf("%s must be an integer", key)}
	}
	return n
}

// parseParams fills dst via fill, then validates it. The returned error,
// if any, is a *paramError whose message is safe to show the caller.
func parseParams(values url.Values, dst interface{}, fill func(q *queryParams)) error {
	q := newQueryParams(values)
	fill(q)
	if q.err != nil {
		return q.err
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return &paramError{msg: verr.Error()}
	}
	return nil
}
