package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Messages returned to API clients.
const (
	msgRequired      = "O campo %s é obrigatório"
	msgLengthBetween = "O campo %s precisa ter entre %d e %d caracteres"
	msgMaxLength     = "O campo %s precisa ter no máximo %d caracteres"
	msgInvalidEmail  = "O campo %s está em formato inválido"
	msgPasswordMatch = "As senhas não conferem."
)

// ValidationErrors maps a payload field name to the list of rule violations
// found for it.
type ValidationErrors map[string][]string

// Add appends a message for field.
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Addf appends a formatted message for field.
func (e ValidationErrors) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Error joins every message as "field: message" in field order.
func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[f], ", "))
	}
	return b.String()
}

// errOrNil returns nil when no violation was recorded.
func (e ValidationErrors) errOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
