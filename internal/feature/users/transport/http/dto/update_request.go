package dto

// UpdateUserReq represents the request body for the PUT /api/users/:id
// endpoint. All fields are optional; absent fields are left unchanged.
type UpdateUserReq struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}
