package dto

import "github.com/hongminglow/society-be/internal/models"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authtoken"`
	UserID    string `json:"userID"`
}

type RoleResponse struct {
	ID   string      `json:"_id"`
	Role models.Role `json:"role"`
}
