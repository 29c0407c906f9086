package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call into the small vocabulary the UI
// layer understands.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindInvalidData        Kind = "invalid_data"
	KindServer             Kind = "server"
	KindNetwork            Kind = "network"
	KindUnknown            Kind = "unknown"
)

// User-facing messages per kind. Server-provided messages take precedence.
var kindMessages = map[Kind]string{
	KindInvalidCredentials: "Credenciais inválidas",
	KindForbidden:          "Acesso negado",
	KindNotFound:           "Recurso não encontrado",
	KindInvalidData:        "Dados inválidos",
	KindServer:             "Erro interno do servidor",
	KindNetwork:            "Erro de conexão. Verifique sua internet",
	KindUnknown:            "Erro desconhecido",
}

// APIError is the normalized form of every failure the client propagates.
// Raw transport errors never cross the client boundary.
type APIError struct {
	Status  int    `json:"status,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a normalized transient network failure.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// kindForStatus maps an HTTP status to its error kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindInvalidCredentials
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnprocessableEntity:
		return KindInvalidData
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// normalizeStatus builds the APIError for an HTTP failure response.
// An explicit server-provided message wins over the status mapping.
func normalizeStatus(status int, serverMessage string) *APIError {
	kind := kindForStatus(status)
	msg := serverMessage
	if msg == "" {
		msg = kindMessages[kind]
	}
	return &APIError{Status: status, Kind: kind, Message: msg}
}

// normalizeNetwork builds the APIError for a transport-level failure.
func normalizeNetwork(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: kindMessages[KindNetwork],
		Err:     err,
	}
}

func validationError(format string, args ...interface{}) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}
