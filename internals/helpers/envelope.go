package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

/* ===============================
   Result envelope {data, error, success}
=================================*/

type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindNotFound   ErrorKind = "not_found"
	KindRemote     ErrorKind = "remote"
	KindException  ErrorKind = "exception"
	KindValidation ErrorKind = "validation"
)

// Result is what every access function returns. Callers check Success
// before trusting Data; nothing is thrown past the function boundary.
type Result[T any] struct {
	Data    T
	Error   string
	Success bool
	// Warning carries a non-fatal secondary failure (e.g. a photo that
	// could not be removed after its student was deleted).
	Warning string

	Kind ErrorKind
	// Code is the SQLSTATE when the failure came from the database.
	Code string
}

type resultWire struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
	Success bool   `json:"success"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	w := resultWire{Error: r.Error, Warning: r.Warning, Success: r.Success}
	if r.Success {
		w.Data = r.Data
	}
	return sonic.Marshal(w)
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Data: v, Success: true}
}

func Fail[T any](kind ErrorKind, msg string) Result[T] {
	return Result[T]{Error: msg, Kind: kind}
}

func NotFound[T any](msg string) Result[T] {
	return Fail[T](KindNotFound, msg)
}

// FromError converts a data-layer error. op is the French action phrase,
// e.g. "la récupération des élèves".
func FromError[T any](op, notFoundMsg string, err error) Result[T] {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[T](notFoundMsg)
	}
	code := PGCode(err)
	msg := err.Error()
	if friendly := ConstraintMessage(code); friendly != "" {
		msg = friendly
	}
	return Result[T]{
		Error: fmt.Sprintf("Erreur lors de %s : %s", op, msg),
		Kind:  KindRemote,
		Code:  code,
	}
}

// Exception builds the envelope for a recovered panic.
func Exception[T any](op string, v any) Result[T] {
	return Fail[T](KindException, fmt.Sprintf("Exception lors de %s : %v", op, v))
}

// Guard must be deferred directly: defer helper.Guard(&res, op)
func Guard[T any](res *Result[T], op string) {
	if r := recover(); r != nil {
		*res = Exception[T](op, r)
	}
}

// Map turns a Result[T] into a Result[U] keeping the failure fields.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := Result[U]{Error: r.Error, Success: r.Success, Warning: r.Warning, Kind: r.Kind, Code: r.Code}
	if r.Success {
		out.Data = fn(r.Data)
	}
	return out
}

// Failed re-types a failed result.
func Failed[U, T any](r Result[T]) Result[U] {
	return Result[U]{Error: r.Error, Kind: r.Kind, Code: r.Code}
}

func (r Result[T]) IsNotFound() bool { return r.Kind == KindNotFound }

func (r Result[T]) IsConstraint() bool { return strings.HasPrefix(r.Code, "23") }

/* ===============================
   Aggregate variants
=================================*/

type CountResult struct {
	Count   int64  `json:"count"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

type TotalResult struct {
	Total   float64 `json:"total"`
	Error   string  `json:"error,omitempty"`
	Success bool    `json:"success"`
}

func ToCount(r Result[int64]) CountResult {
	return CountResult{Count: r.Data, Error: r.Error, Success: r.Success}
}

func ToTotal(r Result[float64]) TotalResult {
	return TotalResult{Total: r.Data, Error: r.Error, Success: r.Success}
}
