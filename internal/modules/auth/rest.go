package auth

import (
	"context"

	"github.com/juju/errors"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository returns a Repository backed by the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) Login(ctx context.Context, req LoginRequest) (string, error) {
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := r.client.Mutate(ctx, endpoints.Login, rest.NoArg, req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.NotFoundf("access token in login response")
	}
	return out.AccessToken, nil
}

func (r *restRepo) Logout(ctx context.Context) error {
	return r.client.Mutate(ctx, endpoints.Logout, rest.NoArg, nil, nil)
}

func (r *restRepo) ForgetSession() { r.client.Reset() }

func (r *restRepo) ForgotPassword(ctx context.Context, email string) error {
	return r.client.Mutate(ctx, endpoints.ForgotPassword, rest.NoArg, map[string]string{"email": email}, nil)
}

func (r *restRepo) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return r.client.Mutate(ctx, endpoints.ResetPassword, rest.NoArg, req, nil)
}
