package dto

import "encoding/json"

// CredentialRequest is the identity posted to /jwt. Keys other than email,
// name and photo are kept in Extra.
type CredentialRequest struct {
	Email string
	Name  string
	Photo string
	Extra map[string]any
}

func (r *CredentialRequest) UnmarshalJSON(data []byte) error {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	r.Email, _ = body["email"].(string)
	r.Name, _ = body["name"].(string)
	r.Photo, _ = body["photo"].(string)
	delete(body, "email")
	delete(body, "name")
	delete(body, "photo")
	if len(body) > 0 {
		r.Extra = body
	}
	return nil
}

// SaveUserRequest payload for POST /user. Any role in the body is ignored.
type SaveUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// RoleResponse answers GET /user/:email.
type RoleResponse struct {
	Role string `json:"role,omitempty"`
}

// SuccessResponse acknowledges cookie operations.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// InsertResult mirrors the identifier of a newly stored document.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// MessageResponse is a message with an optional insert result.
type MessageResponse struct {
	Message string        `json:"message"`
	Result  *InsertResult `json:"result,omitempty"`
}
