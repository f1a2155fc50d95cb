package db

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect captures the SQL differences between the supported drivers
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat
	// substringFn is a two-argument function returning the 1-based position
	// of a substring, or 0 when absent. Both variants compare case-sensitively.
	substringFn string
	nowExpr     string
}

var (
	SQLite = Dialect{
		Name:        "sqlite",
		Placeholder: squirrel.Question,
		substringFn: "instr",
		nowExpr:     "CURRENT_TIMESTAMP",
	}
	Postgres = Dialect{
		Name:        "postgres",
		Placeholder: squirrel.Dollar,
		substringFn: "strpos",
		nowExpr:     "to_char(CURRENT_TIMESTAMP, 'YYYY-MM-DD HH24:MI:SS')",
	}
)

// Contains matches rows whose column holds term as a case-sensitive substring.
// NULL columns never match.
func (d Dialect) Contains(column, term string) squirrel.Sqlizer {
	return squirrel.Expr(fmt.Sprintf("%s(%s, ?) > 0", d.substringFn, column), term)
}

// Now renders the current timestamp in the "YYYY-MM-DD HH:MM:SS" text form
// used by the created_at and updated_at columns.
func (d Dialect) Now() squirrel.Sqlizer {
	return squirrel.Expr(d.nowExpr)
}
