package api

import (
	"context"
	"net/http"

	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/models"
)

// AuthAPI wraps the /auth endpoints. It does no session bookkeeping; see auth.Service.
type AuthAPI struct {
	client *commonhttp.Client
}

func NewAuthAPI(client *commonhttp.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := a.client.JSON(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.client.JSON(ctx, http.MethodPost, "/auth/change-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) ChangeUsername(ctx context.Context, req models.ChangeUsernameRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.client.JSON(ctx, http.MethodPost, "/auth/change-username", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
