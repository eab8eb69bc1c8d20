// Package authapi adapts the remote authentication endpoints to the session
// service.
package authapi

import (
	"context"
	"fmt"
	"net/http"

	sessionservice "github.com/Black-And-White-Club/esportivo/app/modules/session/application"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

const (
	LoginPath = "/login"
	MePath    = "/me"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	User        *sessiondomain.User `json:"user" validate:"required"`
	AccessToken string              `json:"access_token" validate:"required"`
}

// Impl calls the authentication endpoints through the shared client.
type Impl struct {
	api apiclient.Requester
}

func New(api apiclient.Requester) *Impl {
	return &Impl{api: api}
}

// Login posts the credentials and returns the user and access token.
func (a *Impl) Login(ctx context.Context, identifier, password string) (*sessionservice.LoginResult, error) {
	var resp LoginResponse
	if err := a.api.Post(ctx, LoginPath, LoginRequest{Login: identifier, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &sessionservice.LoginResult{User: resp.User, AccessToken: resp.AccessToken}, nil
}

// Me fetches the profile of the token holder.
func (a *Impl) Me(ctx context.Context) (*sessiondomain.User, error) {
	var user sessiondomain.User
	if err := a.api.Get(ctx, MePath, nil, &user); err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return nil, fmt.Errorf("session expired: %w", err)
		}
		return nil, err
	}
	return &user, nil
}

var _ sessionservice.Authenticator = (*Impl)(nil)
