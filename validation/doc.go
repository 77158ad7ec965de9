// Package validation turns invalid input into INVALID_INPUT AppErrors.
//
// Request DTOs use struct tags, including the custom "username" tag:
//
//	type LoginRequest struct {
//	    Username string `json:"username" validate:"required,min=3,max=32,username"`
//	    Password string `json:"password" validate:"required,min=5,max=128"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
//
// Checks that do not fit tags use the collecting Validator:
//
//	v := validation.New().Range("limit", page.Limit, 1, 100).Min("offset", page.Offset, 0)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
