package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type PersonService interface {
	CreatePerson(ctx context.Context, person *types.Person) (*types.Person, error)
	GetPerson(ctx context.Context, personID uuid.UUID) (*types.Person, error)
	GetPersonWithHistory(ctx context.Context, personID uuid.UUID) (*types.Person, error)
	ListPersons(ctx context.Context) ([]*types.Person, error)
	UpdatePerson(ctx context.Context, personID uuid.UUID, fields map[string]any) (*types.Person, error)
	DeletePerson(ctx context.Context, personID uuid.UUID) error
}

// Fields a client may set directly. Derived score fields are owned by the
// scoring service and rejected here.
var personWritableFields = map[string]struct{}{
	"first_name":             {},
	"last_name":              {},
	"email":                  {},
	"phone":                  {},
	"city":                   {},
	"state":                  {},
	"relationship_energy":    {},
	"relationship_structure": {},
}

type personService struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
}

func NewPersonService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo) PersonService {
	serviceLog := log.With("service", "PersonService")
	return &personService{db: db, log: serviceLog, personRepo: personRepo}
}

func (ps *personService) CreatePerson(ctx context.Context, person *types.Person) (*types.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person required")
	}
	person.FirstName = strings.TrimSpace(person.FirstName)
	person.LastName = strings.TrimSpace(person.LastName)
	if person.FirstName == "" || person.LastName == "" {
		return nil, fmt.Errorf("first_name and last_name required")
	}
	if person.RelationshipEnergy < 0 || person.RelationshipEnergy > 100 {
		return nil, fmt.Errorf("relationship_energy must be 0-100")
	}
	if person.RelationshipStructure < 0 || person.RelationshipStructure > 100 {
		return nil, fmt.Errorf("relationship_structure must be 0-100")
	}

	person.ID = uuid.New()
	created, err := ps.personRepo.Create(ctx, nil, []*types.Person{person})
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return created[0], nil
}

func (ps *personService) GetPerson(ctx context.Context, personID uuid.UUID) (*types.Person, error) {
	found, err := ps.personRepo.GetByIDs(ctx, nil, []uuid.UUID{personID})
	if err != nil {
		return nil, fmt.Errorf("fetch person: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("person does not exist")
	}
	return found[0], nil
}

func (ps *personService) GetPersonWithHistory(ctx context.Context, personID uuid.UUID) (*types.Person, error) {
	person, err := ps.personRepo.GetWithHistory(ctx, nil, personID)
	if err != nil {
		return nil, fmt.Errorf("fetch person with history: %w", err)
	}
	return person, nil
}

func (ps *personService) ListPersons(ctx context.Context) ([]*types.Person, error) {
	return ps.personRepo.List(ctx, nil)
}

func (ps *personService) UpdatePerson(ctx context.Context, personID uuid.UUID, fields map[string]any) (*types.Person, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	for key := range fields {
		if _, ok := personWritableFields[key]; !ok {
			return nil, fmt.Errorf("field %q is not writable", key)
		}
	}

	var out *types.Person
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ps.personRepo.GetByIDs(ctx, tx, []uuid.UUID{personID})
		if err != nil {
			return fmt.Errorf("fetch person: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("person does not exist")
		}

		if err := ps.personRepo.UpdateFields(ctx, tx, personID, fields); err != nil {
			return fmt.Errorf("update person: %w", err)
		}

		reloaded, err := ps.personRepo.GetByIDs(ctx, tx, []uuid.UUID{personID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload person after update")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ps *personService) DeletePerson(ctx context.Context, personID uuid.UUID) error {
	return ps.personRepo.Delete(ctx, nil, personID)
}
