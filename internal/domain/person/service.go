package person

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/pkg/logger"
)

// Service handles the person registry
type Service struct {
	repo      Repository
	publisher events.Publisher
}

// NewService creates person service
func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{repo: repo, publisher: publisher}
}

// Create validates and stores a new person.
// The name is trimmed; when both dates are set the death date must be strictly later.
func (s *Service) Create(ctx context.Context, in CreatePersonInput) (*Person, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if in.BirthDate != nil && in.DeathDate != nil && !in.DeathDate.After(*in.BirthDate) {
		return nil, ErrInvalidLifespan
	}

	now := time.Now().UTC()
	p := &Person{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.BirthDate != nil {
		p.BirthDate = sql.NullTime{Time: in.BirthDate.UTC(), Valid: true}
	}
	if in.DeathDate != nil {
		p.DeathDate = sql.NullTime{Time: in.DeathDate.UTC(), Valid: true}
	}
	if in.Notes != nil && strings.TrimSpace(*in.Notes) != "" {
		p.Notes = sql.NullString{String: *in.Notes, Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	logger.LogInfo(ctx, "Person created", "person_id", p.ID.String())
	s.publisher.Publish(ctx, events.New(events.TypePersonCreated).WithPerson(p.ID))
	return p, nil
}

// List returns everyone, most recently created first
func (s *Service) List(ctx context.Context) ([]*Person, error) {
	people, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// GetByID returns a person or ErrPersonNotFound
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	if p == nil {
		return nil, ErrPersonNotFound
	}
	return p, nil
}

// Stats returns the number of people
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count people: %w", err)
	}
	return &Stats{TotalPeople: n}, nil
}
