package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
)

// PgxPersonRepository implements the person repository using pgxpool.
type PgxPersonRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository creates a new PgxPersonRepository.
func NewPersonRepository(pool *pgxpool.Pool) portsrepo.PersonRepositoryFacade {
	return &PgxPersonRepository{pool: pool}
}

var _ portsrepo.PersonRepositoryFacade = (*PgxPersonRepository)(nil)

func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	query := `
		SELECT person_id, name, created_at, updated_at
		FROM persons
		WHERE person_id = $1 AND deleted_at IS NULL
	`
	person := &domain.Person{}
	err := r.pool.QueryRow(ctx, query, personID).Scan(
		&person.PersonID, &person.Name, &person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding person by ID: %w", err)
	}
	return person, nil
}

func (r *PgxPersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	query := `
		SELECT person_id, name, created_at, updated_at
		FROM persons
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing persons: %w", err)
	}
	defer rows.Close()

	persons := make([]domain.Person, 0)
	for rows.Next() {
		var person domain.Person
		if err := rows.Scan(&person.PersonID, &person.Name, &person.CreatedAt, &person.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning person: %w", err)
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persons: %w", err)
	}
	return persons, nil
}

func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	query := `
		INSERT INTO persons (person_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, person.PersonID, person.Name, person.CreatedAt, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving person: %w", err)
	}
	return nil
}

func (r *PgxPersonRepository) UpdatePerson(ctx context.Context, person domain.Person) error {
	query := `UPDATE persons SET name = $2, updated_at = $3 WHERE person_id = $1 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, person.PersonID, person.Name, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error updating person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPersonRepository) DeletePerson(ctx context.Context, personID string) error {
	query := `UPDATE persons SET deleted_at = $2 WHERE person_id = $1 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, personID, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
