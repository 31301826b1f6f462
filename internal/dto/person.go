package dto

import (
	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// CreatePersonRequest defines the payload for creating a person.
type CreatePersonRequest struct {
	Name string `json:"name" binding:"required"`
}

// PersonResponse defines the person data returned by the API.
type PersonResponse struct {
	PersonID string `json:"personID"`
	Name     string `json:"name"`
}

// ToPersonResponse maps a domain person to its response DTO.
func ToPersonResponse(p domain.Person) PersonResponse {
	return PersonResponse{PersonID: p.PersonID, Name: p.Name}
}

// ListPersonsResponse wraps the person listing.
type ListPersonsResponse struct {
	Persons []PersonResponse `json:"persons"`
}
