package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/emrekole/takip/internal/auth"
)

type userResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      auth.Role   `json:"role"`
	IsAdmin   bool        `json:"is_admin"`
	Status    auth.Status `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsAdmin:   u.Admin(),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
