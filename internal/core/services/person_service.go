package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// personService provides business logic for persons.
type personService struct {
	BaseService
	personRepo portsrepo.PersonRepositoryFacade
}

// NewPersonService creates a new person service.
func NewPersonService(personRepo portsrepo.PersonRepositoryFacade) portssvc.PersonSvcFacade {
	return &personService{personRepo: personRepo}
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

// CreatePerson creates a new person.
func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*domain.Person, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: person name cannot be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	person := domain.Person{
		PersonID:    uuid.NewString(),
		Name:        name,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.personRepo.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return &person, nil
}

// GetPersonByID retrieves a person by ID.
func (s *personService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPersons returns all non-deleted persons.
func (s *personService) ListPersons(ctx context.Context) ([]domain.Person, error) {
	persons, err := s.personRepo.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

// DeletePerson soft-deletes a person.
func (s *personService) DeletePerson(ctx context.Context, personID string) error {
	if err := s.personRepo.DeletePerson(ctx, personID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
