package post_client

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
)

// ValidatePosts rejects nil records and records without a title or content.
func ValidatePosts(validate *validator.Validate, posts ...*model.Post) error {
	for i, post := range posts {
		if post == nil {
			return fmt.Errorf("%w: record %d is null", custom_errors.ErrMalformedPost, i)
		}
		if err := validate.Struct(post); err != nil {
			return fmt.Errorf("%w: record %d: %v", custom_errors.ErrMalformedPost, i, err)
		}
	}
	return nil
}
