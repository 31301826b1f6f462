package repositories

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// PersonReader defines read operations for person data.
type PersonReader interface {
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	ListPersons(ctx context.Context) ([]domain.Person, error)
}

// PersonWriter defines write operations for person data.
type PersonWriter interface {
	SavePerson(ctx context.Context, person domain.Person) error
	UpdatePerson(ctx context.Context, person domain.Person) error
	DeletePerson(ctx context.Context, personID string) error
}

// PersonRepositoryFacade combines all person-related repository interfaces.
type PersonRepositoryFacade interface {
	PersonReader
	PersonWriter
}
