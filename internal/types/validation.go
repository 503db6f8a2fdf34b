package types

import (
	"strings"

	clierr "github.com/farmlink/client-go/internal/errors"
)

// RequiredFields returns the field keys a post of the given role must carry.
// The lists mirror the backend's create-post checks; validating locally saves
// a round trip for a guaranteed-invalid request.
func RequiredFields(role string) []string {
	switch role {
	case RoleFarmer:
		return []string{"crop_name", "crop_details", "quantity", "location"}
	case RoleBuyer:
		return []string{"name", "organization", "requirements", "location"}
	}
	return nil
}

// ValidateRole rejects anything other than the two known role tags.
func ValidateRole(op, role string) error {
	if role != RoleFarmer && role != RoleBuyer {
		return clierr.NewValidation(op, "role")
	}
	return nil
}

// ValidatePostFields checks the role-specific required fields, naming every
// missing or blank one in the returned Validation error.
func ValidatePostFields(op, role string, fields PostFields) error {
	if err := ValidateRole(op, role); err != nil {
		return err
	}
	var missing []string
	for _, key := range RequiredFields(role) {
		if strings.TrimSpace(fields[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return clierr.NewValidation(op, missing...)
	}
	return nil
}

// ValidateIDPresent rejects empty identifiers before any network call.
func ValidateIDPresent(op, id, name string) error {
	if strings.TrimSpace(id) == "" {
		return clierr.NewValidation(op, name)
	}
	return nil
}
