package services

import "errors"

// ErrorKind classifies service errors for transport mapping
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "internal"
}

// Error is a user-facing failure. Message is safe to return to clients.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrCredentialsRequired = &Error{Kind: KindValidation, Message: "Usuario y contraseña requeridos"}
	ErrUsernameTaken       = &Error{Kind: KindConflict, Message: "Usuario ya existe"}
	ErrInvalidCredentials  = &Error{Kind: KindUnauthorized, Message: "Credenciales inválidas"}
	ErrUserNotFound        = &Error{Kind: KindUnauthorized, Message: "Usuario no encontrado"}

	ErrTitleRequired = &Error{Kind: KindValidation, Message: "El título es requerido"}
	ErrTaskNotFound  = &Error{Kind: KindNotFound, Message: "Tarea no encontrada"}

	ErrNameRequired    = &Error{Kind: KindValidation, Message: "El nombre es requerido"}
	ErrProjectNotFound = &Error{Kind: KindNotFound, Message: "Proyecto no encontrado"}

	ErrTaskIDRequired = &Error{Kind: KindValidation, Message: "ID de tarea requerido"}
	ErrCommentEmpty   = &Error{Kind: KindValidation, Message: "El comentario no puede estar vacío"}

	ErrInvalidReportType = &Error{Kind: KindNotFound, Message: "Tipo de reporte no válido"}
)

// KindOf returns the kind of err; anything that is not an *Error is internal
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
