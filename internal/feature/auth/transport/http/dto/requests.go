// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import openapi_types "github.com/oapi-codegen/runtime/types"

// RegisterReq is the body of POST /auth/register. Role defaults to user.
type RegisterReq struct {
	Email     openapi_types.Email `json:"email" binding:"required"`
	Password  string              `json:"password" binding:"required,min=6"`
	FirstName string              `json:"firstName" binding:"required,max=100"`
	LastName  string              `json:"lastName" binding:"required,max=100"`
	Role      string              `json:"role" binding:"omitempty,oneof=user admin"`
}

// LoginReq is the body of POST /auth/login.
type LoginReq struct {
	Email    openapi_types.Email `json:"email" binding:"required"`
	Password string              `json:"password" binding:"required"`
}

// RefreshReq is the body of POST /auth/refresh.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
