// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"fmt"
	"strings"
)

// where accumulates AND-ed conditions with positional $N parameters.
// Each "?" in an added expression is bound to that call's single argument,
// so an expression may reference its argument more than once.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(expr string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(expr, "?", fmt.Sprintf("$%d", len(w.args))))
}

// addIf adds expr only when ok is true.
func (w *where) addIf(ok bool, expr string, arg interface{}) {
	if ok {
		w.add(expr, arg)
	}
}

// String renders " WHERE a AND b" or "" when empty.
func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
