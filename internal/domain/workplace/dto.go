package workplace

import (
	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
)

type CreateWorkplaceRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

func (r *CreateWorkplaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkplaceResponse struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

type JoinRequestResponse struct {
	ID          string  `json:"id"`
	WorkplaceID string  `json:"workplace_id"`
	UserID      string  `json:"user_id"`
	Status      string  `json:"status"`
	UserName    *string `json:"user_name,omitempty"`
	UserEmail   *string `json:"user_email,omitempty"`
}
