package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// EventService handles events and registrations
type EventService struct {
	eventRepo repositories.EventRepository
	clubRepo  repositories.ClubRepository
	userRepo  repositories.UserRepository
	audit     *AuditService
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository, clubRepo repositories.ClubRepository, userRepo repositories.UserRepository, audit *AuditService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		userRepo:  userRepo,
		audit:     audit,
	}
}

// EventInput represents event create input
type EventInput struct {
	Title                string     `json:"title" validate:"required"`
	Description          string     `json:"description,omitempty"`
	ClubID               *uint      `json:"club_id,omitempty"`
	EventDate            time.Time  `json:"event_date" validate:"required"`
	Venue                string     `json:"venue,omitempty"`
	MaxParticipants      int        `json:"max_participants"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
}

// CreateEvent schedules an event. max_participants = 0 means unlimited.
func (s *EventService) CreateEvent(ctx context.Context, input *EventInput, actor *domain.Identity, sourceIP string) (*models.Event, error) {
	if input.MaxParticipants < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ClubID != nil {
		if _, err := s.clubRepo.GetClubByID(ctx, *input.ClubID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrClubNotFound
			}
			return nil, err
		}
	}

	event := &models.Event{
		Title:                input.Title,
		Description:          input.Description,
		ClubID:               input.ClubID,
		EventDate:            input.EventDate,
		Venue:                input.Venue,
		MaxParticipants:      input.MaxParticipants,
		RegistrationDeadline: input.RegistrationDeadline,
		Status:               models.EventUpcoming,
	}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Event", event.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent gets an event by ID
func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListEvents lists events, optionally filtered by status
func (s *EventService) ListEvents(ctx context.Context, status string, offset, limit int) ([]*models.Event, int64, error) {
	return s.eventRepo.ListEvents(ctx, status, offset, limit)
}

// EventUpdateInput represents event update input
type EventUpdateInput struct {
	Title                string     `json:"title,omitempty"`
	Description          string     `json:"description,omitempty"`
	EventDate            *time.Time `json:"event_date,omitempty"`
	Venue                string     `json:"venue,omitempty"`
	MaxParticipants      *int       `json:"max_participants,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Status               *string    `json:"status,omitempty"`
}

// UpdateEvent patches an event. Capacity can never drop below the count
// already registered.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, input *EventUpdateInput, actor *domain.Identity, sourceIP string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MaxParticipants != nil {
		if *input.MaxParticipants != 0 && *input.MaxParticipants < event.RegisteredCount {
			return nil, domain.ErrInvalidInput
		}
		event.MaxParticipants = *input.MaxParticipants
	}
	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}
	if input.Venue != "" {
		event.Venue = input.Venue
	}
	if input.RegistrationDeadline != nil {
		event.RegistrationDeadline = input.RegistrationDeadline
	}
	if input.Status != nil {
		event.Status = *input.Status
	}

	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Event", event.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.eventRepo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEventNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Event", id, nil, sourceIP)
}

// RegisterInput represents an event signup
type SignupInput struct {
	EventID   uint `json:"event_id" validate:"required"`
	StudentID uint `json:"student_id" validate:"required"`
}

// Register signs a student up for an event. The deadline is checked first;
// capacity and the one-signup rule are enforced atomically by the
// repository.
func (s *EventService) Register(ctx context.Context, input *SignupInput, actor *domain.Identity, sourceIP string) (*models.EventParticipation, error) {
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(input.StudentID) {
		return nil, domain.ErrForbidden
	}

	event, err := s.GetEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventUpcoming {
		return nil, domain.ErrInvalidInput
	}
	if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
		return nil, domain.ErrDeadlinePassed
	}
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	participation, err := s.eventRepo.RegisterParticipant(ctx, input.EventID, input.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionRegister, "EventParticipation", participation.ID,
		map[string]uint{"event_id": input.EventID, "student_id": input.StudentID}, sourceIP); err != nil {
		return nil, err
	}

	log.Printf("🎟️ Student %d registered for event %d", input.StudentID, input.EventID)
	return participation, nil
}

// MarkAttended records that a participant showed up
func (s *EventService) MarkAttended(ctx context.Context, participationID uint, actor *domain.Identity, sourceIP string) (*models.EventParticipation, error) {
	participation, err := s.eventRepo.MarkAttended(ctx, participationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "EventParticipation", participationID,
		map[string]bool{"attended": true}, sourceIP); err != nil {
		return nil, err
	}
	return participation, nil
}

// ListParticipants lists an event's signups
func (s *EventService) ListParticipants(ctx context.Context, eventID uint) ([]*models.EventParticipation, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListParticipationsByEvent(ctx, eventID)
}

// ListParticipationsByStudent lists a student's event signups
func (s *EventService) ListParticipationsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.EventParticipation, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.eventRepo.ListParticipationsByStudent(ctx, studentID)
}
