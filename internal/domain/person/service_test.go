package person

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/pkg/apperror"
	"github.com/familytree/gallery-api/internal/pkg/database/dbtest"
)

// repoStub is a mock for Repository
type repoStub struct {
	people []*Person
}

func (r *repoStub) Create(_ context.Context, p *Person) error {
	r.people = append(r.people, p)
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Person, error) {
	for _, p := range r.people {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *repoStub) List(_ context.Context) ([]*Person, error) {
	out := make([]*Person, 0, len(r.people))
	for i := len(r.people) - 1; i >= 0; i-- {
		out = append(out, r.people[i])
	}
	return out, nil
}

func (r *repoStub) Count(_ context.Context) (int, error) {
	return len(r.people), nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateTrimsName(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	p, err := svc.Create(context.Background(), CreatePersonInput{
		Name:      "  Ada Lovelace \n",
		BirthDate: date(1815, time.December, 10),
		DeathDate: date(1852, time.November, 27),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Ada Lovelace" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if p.ID == uuid.Nil || p.CreatedAt.IsZero() {
		t.Errorf("expected generated id and timestamps")
	}
	if p.Notes.Valid {
		t.Errorf("expected notes to be null")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&repoStub{}, nil)
	ctx := context.Background()
	blank := "   "

	tests := []struct {
		name string
		in   CreatePersonInput
		want error
	}{
		{"empty name", CreatePersonInput{Name: ""}, ErrNameRequired},
		{"whitespace name", CreatePersonInput{Name: " \t "}, ErrNameRequired},
		{"death before birth", CreatePersonInput{Name: "X", BirthDate: date(1950, 1, 2), DeathDate: date(1950, 1, 1)}, ErrInvalidLifespan},
		{"death equals birth", CreatePersonInput{Name: "X", BirthDate: date(1950, 1, 1), DeathDate: date(1950, 1, 1)}, ErrInvalidLifespan},
		{"only death date", CreatePersonInput{Name: "X", DeathDate: date(1950, 1, 1), Notes: &blank}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) || !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateAcceptsAnyLaterDeathDate(t *testing.T) {
	svc := NewService(&repoStub{}, nil)
	birth := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{time.Second, time.Hour, 24 * time.Hour, 80 * 365 * 24 * time.Hour} {
		death := birth.Add(offset)
		if _, err := svc.Create(context.Background(), CreatePersonInput{Name: "p", BirthDate: &birth, DeathDate: &death}); err != nil {
			t.Errorf("offset %v: unexpected error %v", offset, err)
		}
	}
}

func TestGetByIDAndStats(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	p, _ := svc.Create(ctx, CreatePersonInput{Name: "Grandma"})
	svc.Create(ctx, CreatePersonInput{Name: "Grandpa"})

	got, err := svc.GetByID(ctx, p.ID)
	if err != nil || got.Name != "Grandma" {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
	if _, err := svc.GetByID(ctx, uuid.New()); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got %v", err)
	}

	stats, _ := svc.Stats(ctx)
	if stats.TotalPeople != 2 {
		t.Errorf("expected 2 people, got %d", stats.TotalPeople)
	}

	list, _ := svc.List(ctx)
	if list[0].Name != "Grandpa" {
		t.Errorf("expected most recent first, got %s", list[0].Name)
	}
}

func TestRepositoryListOrder(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreatePersonInput{Name: "First"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, _ := svc.Create(ctx, CreatePersonInput{Name: "Second", BirthDate: date(1990, 5, 1)})

	people, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(people) != 2 || people[0].ID != second.ID || people[1].ID != first.ID {
		t.Fatalf("expected created_at desc order")
	}
	if !people[0].BirthDate.Valid || people[0].BirthDate.Time.Year() != 1990 {
		t.Errorf("expected birth date to round-trip, got %+v", people[0].BirthDate)
	}

	n, _ := repo.Count(ctx)
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}
