package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Clubs
// ============================================================

// clubRepository implements ClubRepository interface
type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	err := r.db.WithContext(ctx).Create(club).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *clubRepository) GetClubByID(ctx context.Context, id uint) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).Preload("Coordinator").Where("id = ?", id).First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) ListClubs(ctx context.Context, offset, limit int) ([]*models.Club, int64, error) {
	var clubs []*models.Club
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Club{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Coordinator").
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}

	return clubs, total, nil
}

func (r *clubRepository) UpdateClub(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

func (r *clubRepository) DeleteClub(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Club{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateMembership creates a membership; the unique index on
// (club_id, student_id) turns a duplicate join into a conflict.
func (r *clubRepository) CreateMembership(ctx context.Context, membership *models.ClubMembership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateMembership
	}
	return err
}

func (r *clubRepository) GetMembershipByID(ctx context.Context, id uint) (*models.ClubMembership, error) {
	var membership models.ClubMembership
	err := r.db.WithContext(ctx).Preload("Club").Where("id = ?", id).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *clubRepository) UpdateMembership(ctx context.Context, membership *models.ClubMembership) error {
	return r.db.WithContext(ctx).Model(&models.ClubMembership{}).
		Where("id = ?", membership.ID).
		Updates(map[string]interface{}{
			"role":   membership.Role,
			"status": membership.Status,
		}).Error
}

func (r *clubRepository) DeleteMembership(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClubMembership{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clubRepository) ListMembershipsByClub(ctx context.Context, clubID uint) ([]*models.ClubMembership, error) {
	var memberships []*models.ClubMembership
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("club_id = ?", clubID).
		Find(&memberships).Error
	return memberships, err
}

func (r *clubRepository) ListMembershipsByStudent(ctx context.Context, studentID uint) ([]*models.ClubMembership, error) {
	var memberships []*models.ClubMembership
	err := r.db.WithContext(ctx).
		Preload("Club").
		Where("student_id = ?", studentID).
		Find(&memberships).Error
	return memberships, err
}

// CreateBudgetEntry appends one movement to a club's ledger
func (r *clubRepository) CreateBudgetEntry(ctx context.Context, entry *models.ClubBudget) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *clubRepository) ListBudgetEntries(ctx context.Context, entryType string, clubID *uint, offset, limit int) ([]*models.ClubBudget, int64, error) {
	var entries []*models.ClubBudget
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ClubBudget{})
	if entryType != "" {
		query = query.Where("type = ?", entryType)
	}
	if clubID != nil {
		query = query.Where("club_id = ?", *clubID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Club").
		Order("transaction_date DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *clubRepository) ListBudgetEntriesByClub(ctx context.Context, clubID uint) ([]*models.ClubBudget, error) {
	var entries []*models.ClubBudget
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("transaction_date DESC").
		Find(&entries).Error
	return entries, err
}

// ============================================================
// Events
// ============================================================

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Club").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListEvents(ctx context.Context, status string, offset, limit int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Event{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Club").
		Order("event_date DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) DeleteEvent(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RegisterParticipant claims a seat and records the signup, atomically.
// The seat is claimed with a single conditional update against
// max_participants (0 means unlimited), and the unique index on
// (event_id, student_id) rejects duplicate signups.
func (r *eventRepository) RegisterParticipant(ctx context.Context, eventID, studentID uint) (*models.EventParticipation, error) {
	var participation *models.EventParticipation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Event{}).
			Where("id = ? AND (max_participants = 0 OR registered_count < max_participants)", eventID).
			Update("registered_count", gorm.Expr("registered_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrEventNotFound
			}
			return domain.ErrEventFull
		}

		participation = &models.EventParticipation{
			EventID:   eventID,
			StudentID: studentID,
		}
		if err := tx.Create(participation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateSignup
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return participation, nil
}

func (r *eventRepository) GetParticipationByID(ctx context.Context, id uint) (*models.EventParticipation, error) {
	var participation models.EventParticipation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&participation).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

func (r *eventRepository) MarkAttended(ctx context.Context, id uint) (*models.EventParticipation, error) {
	var participation models.EventParticipation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&participation).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&participation).Update("attended", true).Error; err != nil {
		return nil, err
	}
	participation.Attended = true
	return &participation, nil
}

func (r *eventRepository) ListParticipationsByEvent(ctx context.Context, eventID uint) ([]*models.EventParticipation, error) {
	var participations []*models.EventParticipation
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Student").
		Where("event_id = ?", eventID).
		Find(&participations).Error
	return participations, err
}

func (r *eventRepository) ListParticipationsByStudent(ctx context.Context, studentID uint) ([]*models.EventParticipation, error) {
	var participations []*models.EventParticipation
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("student_id = ?", studentID).
		Find(&participations).Error
	return participations, err
}

// ============================================================
// Hostels
// ============================================================

// hostelRepository implements HostelRepository interface
type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

func (r *hostelRepository) CreateHostel(ctx context.Context, hostel *models.Hostel) error {
	err := r.db.WithContext(ctx).Create(hostel).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *hostelRepository) GetHostelByID(ctx context.Context, id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.WithContext(ctx).Preload("Rooms").Where("id = ?", id).First(&hostel).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepository) ListHostels(ctx context.Context, hostelType string, offset, limit int) ([]*models.Hostel, int64, error) {
	var hostels []*models.Hostel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hostel{})
	if hostelType != "" {
		query = query.Where("type = ?", hostelType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Rooms").
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&hostels).Error
	if err != nil {
		return nil, 0, err
	}

	return hostels, total, nil
}

func (r *hostelRepository) UpdateHostel(ctx context.Context, hostel *models.Hostel) error {
	return r.db.WithContext(ctx).Save(hostel).Error
}

func (r *hostelRepository) CreateRoom(ctx context.Context, room *models.HostelRoom) error {
	err := r.db.WithContext(ctx).Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *hostelRepository) GetRoomByID(ctx context.Context, id uint) (*models.HostelRoom, error) {
	var room models.HostelRoom
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *hostelRepository) ListRoomsByHostel(ctx context.Context, hostelID uint) ([]*models.HostelRoom, error) {
	var rooms []*models.HostelRoom
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

// Allocate claims a bed and records the allocation, atomically. The bed is
// claimed with a single conditional update against capacity, and the
// active-allocation unique index rejects a second open allocation for the
// same student.
func (r *hostelRepository) Allocate(ctx context.Context, roomID, studentID uint) (*models.HostelAllocation, error) {
	var allocation *models.HostelAllocation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.HostelRoom{}).
			Where("id = ? AND occupied < capacity", roomID).
			Update("occupied", gorm.Expr("occupied + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.HostelRoom{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrRoomNotFound
			}
			return domain.ErrRoomFull
		}

		active := true
		allocation = &models.HostelAllocation{
			RoomID:    roomID,
			StudentID: studentID,
			Active:    &active,
		}
		if err := tx.Create(allocation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrActiveAllocation
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return allocation, nil
}

// Vacate closes an active allocation and releases the bed, atomically.
func (r *hostelRepository) Vacate(ctx context.Context, allocationID uint) (*models.HostelAllocation, error) {
	var allocation models.HostelAllocation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", allocationID).First(&allocation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAllocationNotFound
			}
			return err
		}

		now := time.Now()
		result := tx.Model(&models.HostelAllocation{}).
			Where("id = ? AND vacated_date IS NULL", allocationID).
			Updates(map[string]interface{}{
				"active":       nil,
				"vacated_date": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAllocationNotFound
		}

		if err := tx.Model(&models.HostelRoom{}).
			Where("id = ? AND occupied > 0", allocation.RoomID).
			Update("occupied", gorm.Expr("occupied - 1")).Error; err != nil {
			return err
		}

		allocation.Active = nil
		allocation.VacatedDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &allocation, nil
}

func (r *hostelRepository) GetAllocationByID(ctx context.Context, id uint) (*models.HostelAllocation, error) {
	var allocation models.HostelAllocation
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Student").
		Where("id = ?", id).
		First(&allocation).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *hostelRepository) ListAllocationsByStudent(ctx context.Context, studentID uint) ([]*models.HostelAllocation, error) {
	var allocations []*models.HostelAllocation
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("student_id = ?", studentID).
		Order("allocated_date DESC").
		Find(&allocations).Error
	return allocations, err
}
