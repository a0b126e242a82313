// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /api/register endpoint.
// Schema validation (email format, password length, role enum, name length)
// is owned by the usecase, so the fields carry no binding constraints here.
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}
