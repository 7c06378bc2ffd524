package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are not told apart.
	ErrInvalidCredentials = errors.New("Usuário ou senha inválidos")
	// ErrUserLockedOut is returned by Login while the account is locked or
	// not allowed to sign in.
	ErrUserLockedOut = errors.New("Usuário bloqueado")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrSupplierNotFound   = errors.New("Fornecedor não encontrado")
	ErrSupplierNotSaved   = errors.New("Houve um problema ao salvar o registro")
	ErrSupplierNotRemoved = errors.New("Houve um problema ao remover o registro")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Identity error messages.
const (
	msgDuplicateEmail  = "O e-mail '%s' já está em uso."
	msgPasswordTooLong = "A senha excede o tamanho máximo suportado."
)

// IdentityErrors is the list of reasons an account could not be created.
// It is sent to the client as a JSON array of strings.
type IdentityErrors []string

func (e IdentityErrors) Error() string {
	return strings.Join(e, " ")
}
