package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
)

// Audit action tags
const (
	ActionLogin    = "LOGIN"
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionIssue    = "ISSUE"
	ActionReturn   = "RETURN"
	ActionPayment  = "PAYMENT"
	ActionAllocate = "ALLOCATE"
	ActionVacate   = "VACATE"
	ActionRegister = "REGISTER"
)

// AuditService appends security-relevant actions to the audit log.
// Whether a failed append fails the caller is a configuration decision
// (AUDIT_STRICT); the default keeps appends best-effort.
type AuditService struct {
	auditRepo repositories.AuditRepository
	strict    bool
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository, cfg *config.Config) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		strict:    cfg.Audit.Strict,
	}
}

// Record appends one immutable audit entry. detail is marshalled to JSON
// when non-nil.
func (s *AuditService) Record(ctx context.Context, userID *uint, action, entity string, entityID uint, detail interface{}, sourceIP string) error {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		IPAddress: sourceIP,
	}

	if detail != nil {
		raw, err := json.Marshal(detail)
		if err == nil {
			entry.Details = string(raw)
		}
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		if s.strict {
			return err
		}
		log.Printf("⚠️ Audit write failed (best-effort): action=%s entity=%s: %v", action, entity, err)
	}
	return nil
}

// List lists audit entries with pagination
func (s *AuditService) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, offset, limit)
}

// ListByUser lists a user's audit entries
func (s *AuditService) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.ListByUser(ctx, userID, offset, limit)
}

// ListByAction lists audit entries for one action tag
func (s *AuditService) ListByAction(ctx context.Context, action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.ListByAction(ctx, action, offset, limit)
}
