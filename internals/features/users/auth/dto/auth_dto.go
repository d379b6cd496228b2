package dto

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckEmailResponse struct {
	IDParent int64 `json:"idparent"`
}

type SignUpRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
}

var Messages = map[string]string{
	"email.required":          "L'e-mail est requis.",
	"email.email":             "L'e-mail n'est pas valide.",
	"password.required":       "Le mot de passe est requis.",
	"password.min":            "Le mot de passe doit contenir au moins 6 caractères.",
	"repeatPassword.required": "Veuillez répéter le mot de passe.",
	"repeatPassword.eqfield":  "Les mots de passe ne correspondent pas.",
}

type SignUpResponse struct {
	Email    string `json:"email"`
	IDParent int64  `json:"idparent"`
	// Supabase sends a confirmation mail before the first login.
	ConfirmationSent bool `json:"confirmationSent"`
}
