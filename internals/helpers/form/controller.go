// Package form drives a create/update submission: normalize, validate,
// call the access function, then tell the client where to go next.
package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	helper "ecole_backend/internals/helpers"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastInfo    ToastLevel = "info"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

type Toast struct {
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
}

// Outcome is what the client acts on: on success it navigates to Redirect
// and re-fetches; on failure it stays on the form and shows the toast.
type Outcome[Out any] struct {
	State    State               `json:"state"`
	Data     *Out                `json:"data,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
	Refresh  bool                `json:"refresh"`
	Toast    Toast               `json:"toast"`
	Error    string              `json:"error,omitempty"`
	Warning  string              `json:"warning,omitempty"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Kind     helper.ErrorKind    `json:"-"`
	Code     string              `json:"-"`
}

type Config[K comparable, In any, Out any] struct {
	ListRoute string
	Created   string // success toast after create
	Updated   string // success toast after update
	// Messages maps "field.tag" to the text shown for that rule.
	Messages map[string]string

	Validator *validator.Validate
	Create    func(ctx context.Context, in *In) helper.Result[Out]
	Update    func(ctx context.Context, key K, in *In) helper.Result[Out]
}

// crossChecker is implemented by forms with rules spanning several fields
// (e.g. end date not before start date). It runs after field validation.
type crossChecker interface {
	CrossCheck() map[string]string
}

type Controller[K comparable, In any, Out any] struct {
	cfg Config[K, In, Out]

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewController[K comparable, In any, Out any](cfg Config[K, In, Out]) *Controller[K, In, Out] {
	if cfg.Validator == nil {
		cfg.Validator = NewValidator()
	}
	return &Controller[K, In, Out]{cfg: cfg, inflight: map[string]struct{}{}}
}

// Submit runs one submission. key nil means create. token identifies the
// form instance; a second submit with the same token while the first is
// in flight is refused. Updates fall back to the record key as token.
func (c *Controller[K, In, Out]) Submit(ctx context.Context, token string, key *K, in *In) Outcome[Out] {
	Normalize(in)

	fields := map[string][]string{}
	if err := c.cfg.Validator.Struct(in); err != nil {
		fields = c.describe(err)
	} else if cc, ok := any(in).(crossChecker); ok {
		for field, msg := range cc.CrossCheck() {
			fields[field] = append(fields[field], msg)
		}
	}
	if len(fields) > 0 {
		return Outcome[Out]{
			State:  StateFailure,
			Toast:  Toast{Level: ToastError, Message: firstMessage(fields)},
			Error:  "Formulaire invalide",
			Fields: fields,
			Kind:   helper.KindValidation,
		}
	}

	if token == "" && key != nil {
		token = fmt.Sprintf("%v", *key)
	}
	if !c.begin(token) {
		return Outcome[Out]{
			State: StateSubmitting,
			Toast: Toast{Level: ToastWarning, Message: "Soumission déjà en cours."},
			Error: "Soumission déjà en cours",
			Kind:  helper.KindValidation,
		}
	}
	defer c.end(token)

	var res helper.Result[Out]
	msg := c.cfg.Created
	if key == nil {
		res = c.cfg.Create(ctx, in)
	} else {
		res = c.cfg.Update(ctx, *key, in)
		msg = c.cfg.Updated
	}

	if !res.Success {
		return Outcome[Out]{
			State: StateFailure,
			Toast: Toast{Level: ToastError, Message: res.Error},
			Error: res.Error,
			Kind:  res.Kind,
			Code:  res.Code,
		}
	}
	data := res.Data
	out := Outcome[Out]{
		State:    StateSuccess,
		Data:     &data,
		Redirect: c.cfg.ListRoute,
		Refresh:  true,
		Toast:    Toast{Level: ToastSuccess, Message: msg},
		Warning:  res.Warning,
	}
	if res.Warning != "" {
		out.Toast = Toast{Level: ToastWarning, Message: msg + " " + res.Warning}
	}
	return out
}

// State reports the state of a form instance.
func (c *Controller[K, In, Out]) State(token string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[token]; busy {
		return StateSubmitting
	}
	return StateIdle
}

func (c *Controller[K, In, Out]) begin(token string) bool {
	if token == "" {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[token]; busy {
		return false
	}
	c.inflight[token] = struct{}{}
	return true
}

func (c *Controller[K, In, Out]) end(token string) {
	if token == "" {
		return
	}
	c.mu.Lock()
	delete(c.inflight, token)
	c.mu.Unlock()
}

func (c *Controller[K, In, Out]) describe(err error) map[string][]string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return helper.FieldErrors(err)
	}
	out := map[string][]string{}
	for _, fe := range ve {
		text, found := c.cfg.Messages[fe.Field()+"."+fe.Tag()]
		if !found {
			text = fmt.Sprintf("%s: règle %q non respectée", fe.Field(), fe.Tag())
		}
		out[fe.Field()] = append(out[fe.Field()], text)
	}
	return out
}

func firstMessage(fields map[string][]string) string {
	for _, msgs := range fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "Formulaire invalide."
}
