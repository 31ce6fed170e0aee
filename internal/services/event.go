package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"devevent/internal/domain"
)

// maxSlugAttempts bounds the counter-suffix retry when a slug is taken.
const maxSlugAttempts = 20

type eventService struct {
	eventRepo      domain.EventRepository
	media          domain.MediaUploader
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	media domain.MediaUploader,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		media:          media,
		contextTimeout: timeout,
	}
}

// prepareEvent is the event lifecycle hook. It runs immediately before every
// insert/update, in order: required-field check, slug derivation, date
// normalization, time check, list-field checks. Any failure aborts the write;
// on success the record has been mutated into its canonical form. prev is nil
// on create; on update it is the stored record, used for change detection.
func prepareEvent(e *domain.Event, prev *domain.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Image = strings.TrimSpace(e.Image)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Mode = strings.TrimSpace(e.Mode)
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)

	required := []struct {
		name  string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if !domain.IsNonEmptyString(f.value) {
			return fmt.Errorf("field %q is required and cannot be empty: %w", f.name, domain.ErrMissingField)
		}
	}

	// Derive the slug only when the title changed or no slug is set yet.
	if prev == nil || prev.Title != e.Title || e.Slug == "" {
		e.Slug = domain.GenerateSlug(e.Title)
	}

	if prev == nil || prev.Date != e.Date {
		date, err := domain.NormalizeDate(e.Date)
		if err != nil {
			return err
		}
		e.Date = date
	}

	if prev == nil || prev.Time != e.Time {
		t, err := domain.NormalizeTime(e.Time)
		if err != nil {
			return err
		}
		e.Time = t
	}

	if !domain.IsNonEmptyStringSlice(e.Agenda) {
		return fmt.Errorf("field %q must be a non-empty list of non-empty strings: %w", "agenda", domain.ErrInvalidListField)
	}
	if !domain.IsNonEmptyStringSlice(e.Tags) {
		return fmt.Errorf("field %q must be a non-empty list of non-empty strings: %w", "tags", domain.ErrInvalidListField)
	}
	return nil
}

// resolveSlug appends a counter suffix while the derived slug is taken. The
// store's unique index remains the final arbiter for concurrent writers.
func (s *eventService) resolveSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := s.eventRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	return "", domain.ErrDuplicateSlug
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, image []byte, imageName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(image) == 0 {
		return fmt.Errorf("field %q is required and cannot be empty: %w", "image", domain.ErrMissingField)
	}
	url, err := s.media.Upload(ctx, image, imageName)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	event.Image = url

	if err := prepareEvent(event, nil); err != nil {
		return err
	}

	slug, err := s.resolveSlug(ctx, event.Slug)
	if err != nil {
		return err
	}
	event.Slug = slug

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.ToLower(strings.TrimSpace(slug))
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, update *domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.ToLower(strings.TrimSpace(slug))
	prev, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	next := *prev
	applyEventUpdate(&next, update)

	if err := prepareEvent(&next, prev); err != nil {
		return nil, err
	}

	// Re-resolve the slug only when the hook derived a new one.
	if next.Slug != prev.Slug {
		resolved, err := s.resolveSlug(ctx, next.Slug)
		if err != nil {
			return nil, err
		}
		next.Slug = resolved
	}

	updated, err := s.eventRepo.Update(ctx, &next)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func applyEventUpdate(e *domain.Event, u *domain.EventUpdate) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Overview != nil {
		e.Overview = *u.Overview
	}
	if u.Image != nil {
		e.Image = *u.Image
	}
	if u.Venue != nil {
		e.Venue = *u.Venue
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Time != nil {
		e.Time = *u.Time
	}
	if u.Mode != nil {
		e.Mode = *u.Mode
	}
	if u.Audience != nil {
		e.Audience = *u.Audience
	}
	if u.Organizer != nil {
		e.Organizer = *u.Organizer
	}
	if u.Agenda != nil {
		e.Agenda = u.Agenda
	}
	if u.Tags != nil {
		e.Tags = u.Tags
	}
}

func (s *eventService) DeleteEvent(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := s.eventRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
