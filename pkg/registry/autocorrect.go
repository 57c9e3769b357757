package registry

import "fmt"

// fieldCorrections maps fields people reach for out of habit to the field
// fae actually reads
var fieldCorrections = map[string]string{
	"use":          "uses",
	"needs":        "uses",
	"dependencies": "uses",
	"before":       "uses",
	"depends":      "uses",
	"command":      "run",
	"cmd":          "run",
	"script":       "run",
}

// Warning is a problem in a script file that does not stop the load
type Warning struct {
	File   string
	Script string
	Field  string

	// Suggestion is the supported field Field was probably meant to be,
	// or empty
	Suggestion string

	// Line is 1-based, 0 when unknown
	Line int
}

func (w Warning) String() string {
	where := fmt.Sprintf("script %q in %s", w.Script, w.File)
	if w.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, w.Line)
	}

	if w.Suggestion != "" {
		return fmt.Sprintf("fae doesn't support the field %q (%s). You might want to use the field %q instead",
			w.Field, where, w.Suggestion)
	}
	return fmt.Sprintf("fae doesn't support the field %q (%s), it is ignored", w.Field, where)
}

func unknownField(file, script, field string, line int) Warning {
	return Warning{
		File:       file,
		Script:     script,
		Field:      field,
		Suggestion: fieldCorrections[field],
		Line:       line,
	}
}
