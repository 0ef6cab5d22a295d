// Package services holds the server's use cases on top of the repositories.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check validates in and maps failures onto common.ErrValidation.
func check(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}
