package database

import (
	"fmt"
	"strings"
)

// go-sqlbuilder has no ON CONFLICT support for expression conflict targets,
// so these helpers append the clause to a built query. Targets are passed
// through verbatim and may be expressions (e.g. COALESCE(investor_id, '')).

// OnConflictDoNothing appends an ON CONFLICT ... DO NOTHING clause.
func OnConflictDoNothing(query string, targets ...string) string {
	if len(targets) == 0 {
		return query + " ON CONFLICT DO NOTHING"
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING", query, strings.Join(targets, ", "))
}

// OnConflictUpdate appends an ON CONFLICT ... DO UPDATE clause setting each
// column from its EXCLUDED counterpart.
func OnConflictUpdate(query string, target string, columns ...string) string {
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", column, column)
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", query, target, strings.Join(assignments, ", "))
}
