package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// GoTrue talks to the Supabase auth server.
type GoTrue struct {
	BaseURL string // https://<project>.supabase.co
	AnonKey string
	Timeout time.Duration
}

type signUpBody struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type signUpReply struct {
	ID               string `json:"id"`
	ConfirmationSent string `json:"confirmation_sent_at"`
	Session          *struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`

	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (r signUpReply) errorText() string {
	for _, s := range []string{r.Msg, r.Message, r.ErrorDescription} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// SignUp creates the account with metadata stored in user_metadata. It
// reports whether a confirmation mail was sent instead of a session.
func (g *GoTrue) SignUp(ctx context.Context, email, password string, data map[string]any) (bool, error) {
	if g == nil || g.BaseURL == "" || g.AnonKey == "" {
		return false, errors.New("SUPABASE_URL / SUPABASE_ANON_KEY non configurés")
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}

	a := fiber.Post(strings.TrimRight(g.BaseURL, "/") + "/auth/v1/signup")
	a.Set("apikey", g.AnonKey)
	a.Set(fiber.HeaderAuthorization, "Bearer "+g.AnonKey)
	a.JSONEncoder(sonic.Marshal).JSON(signUpBody{Email: email, Password: password, Data: data})
	a.Timeout(timeout)
	if err := a.Parse(); err != nil {
		return false, fmt.Errorf("url supabase invalide: %w", err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return false, fmt.Errorf("supabase injoignable: %w", errors.Join(errs...))
	}

	var reply signUpReply
	_ = sonic.Unmarshal(body, &reply)
	if code >= 400 {
		if msg := reply.errorText(); msg != "" {
			return false, fmt.Errorf("supabase (%d): %s", code, msg)
		}
		return false, fmt.Errorf("supabase (%d)", code)
	}
	return reply.Session == nil, nil
}
