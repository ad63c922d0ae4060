package auth

import (
	"time"

	"buildledger/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a stored account. Password holds a bcrypt hash and is never
// rendered to clients; use ToResponse.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Key() string { return u.ID }

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Actor is the authenticated caller, passed explicitly into every service
// call that needs identity or role.
type Actor struct {
	ID   string
	Name string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CurrentActor reads the identity stored by middleware.JWTAuth.
func CurrentActor(c *gin.Context) Actor {
	return Actor{
		ID:   c.GetString(middleware.ContextUserID),
		Name: c.GetString(middleware.ContextUserName),
		Role: Role(c.GetString(middleware.ContextRole)),
	}
}
