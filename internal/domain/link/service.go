package link

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/domain/image"
	"github.com/familytree/gallery-api/internal/domain/person"
	"github.com/familytree/gallery-api/internal/pkg/lock"
	"github.com/familytree/gallery-api/internal/pkg/logger"
)

// ImageFinder resolves images; implemented by image.Service
type ImageFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*image.Image, error)
}

// PersonFinder resolves people; implemented by person.Service
type PersonFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*person.Person, error)
}

// Service links people to images
type Service struct {
	repo      Repository
	images    ImageFinder
	people    PersonFinder
	locker    lock.Locker
	publisher events.Publisher
}

// NewService creates link service
func NewService(repo Repository, images ImageFinder, people PersonFinder, locker lock.Locker, publisher events.Publisher) *Service {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:      repo,
		images:    images,
		people:    people,
		locker:    locker,
		publisher: publisher,
	}
}

// Link tags a person on an image, optionally with a bounding box.
// Runs under the image lock so a concurrent rotation cannot change the
// dimensions the box was checked against.
func (s *Service) Link(ctx context.Context, in LinkInput) (*Link, error) {
	release, err := s.locker.Acquire(ctx, image.LockKey(in.ImageID))
	if err != nil {
		return nil, fmt.Errorf("acquire image lock: %w", err)
	}
	defer release()

	img, err := s.images.GetByID(ctx, in.ImageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.people.GetByID(ctx, in.PersonID); err != nil {
		return nil, err
	}

	width, height, known := img.Dimensions()
	if err := ValidateBox(in.BoundingBox, width, height, known); err != nil {
		return nil, err
	}

	l := NewLink(in.ImageID, in.PersonID, in.BoundingBox, time.Now().UTC())
	err = s.repo.RunInTx(ctx, func(repo Repository) error {
		exists, err := repo.Exists(ctx, l.ImageID, l.PersonID)
		if err != nil {
			return fmt.Errorf("check link: %w", err)
		}
		if exists {
			return ErrAlreadyLinked
		}
		return repo.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Person linked to image",
		"image_id", l.ImageID.String(),
		"person_id", l.PersonID.String(),
	)
	evt := events.New(events.TypePersonLinked).WithImage(l.ImageID).WithPerson(l.PersonID)
	if box := l.Box(); box != nil {
		evt = evt.WithData(map[string]interface{}{"bounding_box": box})
	}
	s.publisher.Publish(ctx, evt)

	return l, nil
}

// Unlink removes the link, or returns ErrLinkNotFound
func (s *Service) Unlink(ctx context.Context, personID, imageID uuid.UUID) error {
	release, err := s.locker.Acquire(ctx, image.LockKey(imageID))
	if err != nil {
		return fmt.Errorf("acquire image lock: %w", err)
	}
	defer release()

	deleted, err := s.repo.Delete(ctx, imageID, personID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if !deleted {
		return ErrLinkNotFound
	}

	logger.LogInfo(ctx, "Person unlinked from image",
		"image_id", imageID.String(),
		"person_id", personID.String(),
	)
	s.publisher.Publish(ctx, events.New(events.TypePersonUnlinked).WithImage(imageID).WithPerson(personID))
	return nil
}

// PeopleForImage lists the people tagged on an image in link order
func (s *Service) PeopleForImage(ctx context.Context, imageID uuid.UUID) ([]*LinkedPerson, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		return nil, err
	}

	people, err := s.repo.PeopleForImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("list people for image: %w", err)
	}
	if people == nil {
		people = []*LinkedPerson{}
	}
	return people, nil
}
