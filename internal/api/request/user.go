package request

type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
