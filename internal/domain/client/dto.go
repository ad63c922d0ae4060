package client

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=100"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	City    *string `json:"city" validate:"omitempty,max=100"`
}

func (r UpdateClientRequest) Patch() Patch {
	return Patch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
	}
}
