package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClubHandler handles club and membership endpoints
type ClubHandler struct {
	clubService *services.ClubService
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService *services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// CreateClub registers a club
// @Summary Create club
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ClubInput true "Club data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clubs [post]
func (h *ClubHandler) CreateClub(c *fiber.Ctx) error {
	var req services.ClubInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	club, err := h.clubService.CreateClub(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Club created successfully", club)
}

// ListClubs lists clubs
// @Summary List clubs
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clubs [get]
func (h *ClubHandler) ListClubs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	clubs, total, err := h.clubService.ListClubs(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Clubs retrieved successfully", pagination.NewResponse(clubs, params, total))
}

// GetClub gets one club
// @Summary Get club by ID
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [get]
func (h *ClubHandler) GetClub(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	club, err := h.clubService.GetClub(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Club retrieved successfully", club)
}

// UpdateClub patches a club
// @Summary Update club
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param body body services.ClubInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [put]
func (h *ClubHandler) UpdateClub(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var req services.ClubInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	club, err := h.clubService.UpdateClub(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Club updated successfully", club)
}

// DeleteClub removes a club
// @Summary Delete club
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [delete]
func (h *ClubHandler) DeleteClub(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	if err := h.clubService.DeleteClub(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Join requests a club membership
// @Summary Join club
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.JoinInput true "Membership data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clubs/join [post]
func (h *ClubHandler) Join(c *fiber.Ctx) error {
	var req services.JoinInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ClubID == 0 || req.StudentID == 0 {
		return response.BadRequest(c, "Club and student are required")
	}

	membership, err := h.clubService.Join(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Membership requested successfully", membership)
}

// ApproveMembership activates a pending membership
// @Summary Approve membership
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/memberships/{id}/approve [post]
func (h *ClubHandler) ApproveMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid membership ID")
	}

	membership, err := h.clubService.ApproveMembership(c.Context(), id, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Membership approved successfully", membership)
}

// Leave removes a membership
// @Summary Leave club
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/memberships/{id} [delete]
func (h *ClubHandler) Leave(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid membership ID")
	}

	if err := h.clubService.Leave(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// ListMembers lists a club's memberships
// @Summary List club members
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id}/members [get]
func (h *ClubHandler) ListMembers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	members, err := h.clubService.ListMembers(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Members retrieved successfully", members)
}

// ListStudentMemberships lists a student's club memberships
// @Summary List a student's memberships
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/memberships [get]
func (h *ClubHandler) ListStudentMemberships(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	memberships, err := h.clubService.ListMembershipsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Memberships retrieved successfully", memberships)
}

// RecordBudgetEntry appends an entry to a club's ledger
// @Summary Record club budget entry
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BudgetInput true "Budget entry"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /club-budgets [post]
func (h *ClubHandler) RecordBudgetEntry(c *fiber.Ctx) error {
	var req services.BudgetInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ClubID == 0 || req.Title == "" || req.Type == "" {
		return response.BadRequest(c, "Club, title and type are required")
	}

	entry, err := h.clubService.RecordBudgetEntry(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Budget entry recorded successfully", entry)
}

// ListBudgetEntries lists ledger entries across clubs
// @Summary List club budget entries
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by INCOME or EXPENSE"
// @Param club_id query int false "Filter by club"
// @Success 200 {object} response.Response
// @Router /club-budgets [get]
func (h *ClubHandler) ListBudgetEntries(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var clubID *uint
	if raw := c.QueryInt("club_id"); raw > 0 {
		v := uint(raw)
		clubID = &v
	}

	entries, total, err := h.clubService.ListBudgetEntries(c.Context(), c.Query("type"), clubID, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Budget entries retrieved successfully", pagination.NewResponse(entries, params, total))
}

// ListClubBudgetEntries lists one club's full ledger
// @Summary List a club's budget entries
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id}/budgets [get]
func (h *ClubHandler) ListClubBudgetEntries(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	entries, err := h.clubService.ListBudgetEntriesByClub(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Budget entries retrieved successfully", entries)
}
