package services

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// PersonSvcFacade combines all person service operations.
type PersonSvcFacade interface {
	GetPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	ListPersons(ctx context.Context) ([]domain.Person, error)
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error
}
