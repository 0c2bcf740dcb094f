package types

import "matchly/internal/models"

type LoginResponse struct {
	Token string              `json:"token"`
	User  models.UserResource `json:"user"`
}
