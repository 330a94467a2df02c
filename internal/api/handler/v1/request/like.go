package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// AddLikeRequest names the pseudonymous client-generated user. There is
// no server-side identity to check it against.
type AddLikeRequest struct {
	UserID string `json:"user_id"`
}

func (req *AddLikeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Length(1, 100)),
	)
}
