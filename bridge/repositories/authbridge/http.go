package authbridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/avelis/taskboard/bridge/scaffolding/errs"
	"github.com/avelis/taskboard/core/auth"
	"github.com/avelis/taskboard/infrastructure/web"
)

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input RegisterInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	if err := b.auth.Register(ctx, input.Name, input.Email, input.Password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return errs.Newf(errs.Conflict, "User already exists")
		}
		return errs.Newf(errs.InternalOnlyLog, "register: %s", err)
	}

	resp := RegisterResponse{
		Success: true,
		Message: "User registered successfully",
	}
	return web.NewJSONResponseWithStatus(resp, http.StatusCreated)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input LoginInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	token, err := b.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errs.Newf(errs.Unauthenticated, "Invalid email or password")
		}
		return errs.Newf(errs.InternalOnlyLog, "login: %s", err)
	}

	resp := LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	}
	return web.NewJSONResponse(resp)
}
