package domain

import (
	"fmt"
	"strings"
)

// Task statuses. The set is closed: nothing else is ever persisted.
const (
	StatusPendente    = "pendente"
	StatusEmAndamento = "em_andamento"
	StatusConcluida   = "concluida"
)

// ValidStatuses returns the status vocabulary in sorted order.
func ValidStatuses() []string {
	return []string{StatusConcluida, StatusEmAndamento, StatusPendente}
}

// noFilterAliases are query values meaning "list every status".
var noFilterAliases = map[string]bool{
	"all":   true,
	"todas": true,
	"todos": true,
}

// InvalidStatusError reports a status outside the vocabulary.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("Status inválido: %q. Valores permitidos: %s.",
		e.Value, strings.Join(ValidStatuses(), ", "))
}

// NormalizeStatus canonicalizes a raw status: trims, lowercases and checks
// it against the vocabulary. An empty (or all-whitespace) input means the
// caller omitted the field and yields the default StatusPendente.
func NormalizeStatus(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusPendente, nil
	}
	switch s {
	case StatusPendente, StatusEmAndamento, StatusConcluida:
		return s, nil
	}
	return "", &InvalidStatusError{Value: raw}
}

// NormalizeStatusFilter canonicalizes a list-query status. Empty input and
// the aliases all/todas/todos mean "no filter" and yield "".
func NormalizeStatusFilter(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || noFilterAliases[s] {
		return "", nil
	}
	switch s {
	case StatusPendente, StatusEmAndamento, StatusConcluida:
		return s, nil
	}
	return "", &InvalidStatusError{Value: raw}
}
