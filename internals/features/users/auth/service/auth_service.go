package service

import (
	"context"

	"ecole_backend/internals/constants"
	parentModel "ecole_backend/internals/features/people/parents/model"
	"ecole_backend/internals/features/users/auth/dto"
	helper "ecole_backend/internals/helpers"
)

type ParentFinder interface {
	FindByEmail(ctx context.Context, email string) helper.Result[parentModel.ParentModel]
}

type Registrar interface {
	SignUp(ctx context.Context, email, password string, data map[string]any) (bool, error)
}

// AuthService registers parent accounts. Only an email already recorded
// on a parent may sign up; the account is tied to that parent through
// user_metadata.
type AuthService struct {
	Parents ParentFinder
	Auth    Registrar
}

func (s *AuthService) CheckEmail(ctx context.Context, email string) helper.Result[dto.CheckEmailResponse] {
	return helper.Map(s.Parents.FindByEmail(ctx, email), func(p parentModel.ParentModel) dto.CheckEmailResponse {
		return dto.CheckEmailResponse{IDParent: p.IDParent}
	})
}

func (s *AuthService) SignUpParent(ctx context.Context, req *dto.SignUpRequest) (res helper.Result[dto.SignUpResponse]) {
	const op = "l'inscription du parent"
	defer helper.Guard(&res, op)

	found := s.CheckEmail(ctx, req.Email)
	if !found.Success {
		return helper.Failed[dto.SignUpResponse](found)
	}

	pending, err := s.Auth.SignUp(ctx, req.Email, req.Password, map[string]any{
		"role":      constants.RoleParent,
		"parent_id": found.Data.IDParent,
	})
	if err != nil {
		return helper.FromError[dto.SignUpResponse](op, "", err)
	}
	return helper.Ok(dto.SignUpResponse{
		Email:            req.Email,
		IDParent:         found.Data.IDParent,
		ConfirmationSent: pending,
	})
}
