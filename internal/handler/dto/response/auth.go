package response

import "clinic-booking-api/internal/usecase/queries"

type LoginResponse struct {
	Token string                      `json:"token"`
	User  *queries.AuthorizedUserView `json:"user"`
}
