package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// NewValidator returns a validator with the notblank rule registered.
// The HTTP layer and the services share it so both reject the same input.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", entities.ErrValidation, err)
}
