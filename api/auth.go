package api

import (
	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
)

func (api *Api) LoginHandler(r *iz.Request) iz.Responder {
	if api.Gate == nil {
		return failure(r.Request, "login", errNoStore)
	}

	var loginRequest LoginRequest
	if err := api.decode(r, "login", &loginRequest); err != nil {
		return failure(r.Request, "parse login request", err)
	}

	result, err := api.Gate.Login(r.Context(), auth.LoginRequest{
		Passphrase: loginRequest.Passphrase,
		OpenID:     loginRequest.OpenID,
		Name:       loginRequest.Name,
		Email:      loginRequest.Email,
	})
	if err != nil {
		return failure(r.Request, "login", err)
	}

	response := LoginResponse{
		Message:  "You've logged in successfully!",
		Token:    result.Token,
		OwnerID:  result.OwnerID,
		ExpireAt: result.ExpireAt,
	}
	return iz.Respond().Status(200).JSON(response)
}

func (api *Api) LogoutHandler(r *iz.Request) iz.Responder {
	if api.Gate == nil {
		return failure(r.Request, "logout", errNoStore)
	}
	if err := api.Gate.Logout(r.Context(), bearerToken(r.Request)); err != nil {
		return failure(r.Request, "logout", err)
	}
	return iz.Respond().Status(200).Text("Logout successful.")
}

func (api *Api) MeHandler(r *iz.Request, ownerID int64) iz.Responder {
	user, err := api.Service.GetUser(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "get account info", err)
	}
	return iz.Respond().Status(200).JSON(UserToHttp(user))
}
