package service

import "errors"

// Domain errors, tagged so handlers map them to HTTP statuses with
// errors.Is instead of matching message substrings. The messages
// themselves are the user-facing Portuguese detail strings.
var (
	ErrTaskNotFound       = errors.New("Tarefa não encontrada.")
	ErrEmptyTitle         = errors.New("Título é obrigatório.")
	ErrNoUpdateFields     = errors.New("Nenhum campo para atualizar.")
	ErrEmailTaken         = errors.New("Já existe um usuário com esse e-mail.")
	ErrPasswordTooShort   = errors.New("A senha deve ter pelo menos 6 caracteres.")
	ErrInvalidCredentials = errors.New("E-mail ou senha inválidos.")
)
