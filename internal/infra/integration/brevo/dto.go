package brevo

import "github.com/reelgrowth/lead-relay/internal/entity"

type UpsertContactInput struct {
	Email  string
	Name   string
	Phone  string
	Source string
	Tag    entity.LeadTag
}

type UpsertContactResult struct {
	Success   bool
	ContactID string
	Error     string
}

// OpResult reports a write or check that carries no payload back.
type OpResult struct {
	Success bool
	Error   string
}

type Contact struct {
	ID         int64          `json:"id"`
	Email      string         `json:"email"`
	ListIDs    []int64        `json:"listIds"`
	Attributes map[string]any `json:"attributes"`
}

type FetchContactResult struct {
	Success bool
	Contact *Contact
	Error   string
}

// --- wire types ---

type createContactRequest struct {
	Email         string         `json:"email"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	ListIDs       []int64        `json:"listIds,omitempty"`
	UpdateEnabled bool           `json:"updateEnabled"`
}

type createContactResponse struct {
	ID int64 `json:"id"`
}

type updateContactRequest struct {
	Attributes map[string]any `json:"attributes"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
