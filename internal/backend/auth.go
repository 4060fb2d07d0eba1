package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
)

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	_, err := c.do(ctx, call{
		kind:   apperr.KindAuth,
		method: http.MethodPost,
		path:   "/auth/login",
		body:   req,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &apperr.RemoteError{Kind: apperr.KindAuth, Op: "POST /auth/login", Err: errors.New("no access token in response")}
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) error {
	_, err := c.do(ctx, call{
		kind:   apperr.KindAuth,
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
		out:    &dto.MessageResponse{},
	})
	return err
}

// Me resolves token to its user. The token is passed explicitly because it
// may not be stored yet.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var resp dto.User
	_, err := c.do(ctx, call{
		kind:   apperr.KindAuth,
		method: http.MethodGet,
		path:   "/auth/me",
		token:  token,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error) {
	var resp dto.ForgotPasswordResponse
	_, err := c.do(ctx, call{
		kind:   apperr.KindAuth,
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   dto.ForgotPasswordRequest{Email: email},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	_, err := c.do(ctx, call{
		kind:   apperr.KindAuth,
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body:   req,
		out:    &dto.MessageResponse{},
	})
	return err
}
