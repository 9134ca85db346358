package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/features/meetings/meetings/dto"
	"emptrack_backend/internals/features/meetings/meetings/model"
	"emptrack_backend/internals/features/meetings/meetings/service"
	userModel "emptrack_backend/internals/features/users/user/model"
	helper "emptrack_backend/internals/helpers"
)

type MeetingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Notifier  service.Notifier
}

func NewMeetingController(db *gorm.DB, notifier service.Notifier) *MeetingController {
	if notifier == nil {
		notifier = service.NoopNotifier{}
	}
	return &MeetingController{DB: db, Validator: helper.NewValidator(), Notifier: notifier}
}

// visibleTo: meetings the user organises or is invited to
func visibleTo(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Where(
		"meeting_organizer_id = ? OR meeting_id IN (?)",
		userID,
		db.Session(&gorm.Session{NewDB: true}).
			Model(&model.MeetingAttendeeModel{}).
			Select("meeting_attendee_meeting_id").
			Where("meeting_attendee_user_id = ?", userID),
	)
}

// UpcomingMeetings: soonest first, shared with the dashboard.
func UpcomingMeetings(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]model.MeetingModel, error) {
	var rows []model.MeetingModel
	err := visibleTo(db.WithContext(ctx).Model(&model.MeetingModel{}), userID).
		Where("meeting_end_time >= ?", now).
		Order("meeting_start_time ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// GET /api/meetings?scope=upcoming|past|all
func (mc *MeetingController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	scope, err := dto.ParseScope(c.Query("scope"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	p := helper.ResolvePaging(c, 20, 100)

	now := time.Now().UTC()
	q := visibleTo(mc.DB.WithContext(c.UserContext()).Model(&model.MeetingModel{}), userID)
	switch scope {
	case dto.ScopeUpcoming:
		q = q.Where("meeting_end_time >= ?", now).Order("meeting_start_time ASC")
	case dto.ScopePast:
		q = q.Where("meeting_end_time < ?", now).Order("meeting_start_time DESC")
	default:
		q = q.Order("meeting_start_time DESC")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count meetings")
	}

	var rows []model.MeetingModel
	if err := q.Preload("Attendees").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list meetings user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load meetings")
	}

	users, err := mc.userDirectory(c.UserContext(), rows...)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendees")
	}
	out := make([]dto.MeetingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i], userID, users))
	}
	return helper.JsonList(c, "Meetings", out, fiber.Map{"page": p.Page, "per_page": p.PerPage, "total": total})
}

// POST /api/meetings
func (mc *MeetingController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := mc.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	m := req.ToModel(userID)
	ctx := c.UserContext()

	if len(m.Attendees) > 0 {
		ids := make([]uuid.UUID, 0, len(m.Attendees))
		for _, a := range m.Attendees {
			ids = append(ids, a.UserID)
		}
		var n int64
		if err := mc.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check attendees")
		}
		if int(n) != len(ids) {
			return helper.JsonValidationError(c, map[string][]string{"attendee_ids": {"contains unknown users"}})
		}
	}

	// meeting + attendees in one transaction (gorm creates the association)
	if err := mc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	}); err != nil {
		log.Printf("[ERROR] create meeting: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create meeting")
	}

	users, err := mc.userDirectory(ctx, m)
	if err != nil {
		log.Printf("[WARN] attendee lookup after create: %v", err)
	}
	mc.sendInvites(m, users[userID].Name, users)

	return helper.JsonCreated(c, "Meeting created", dto.FromModel(&m, userID, users))
}

// GET /api/meetings/:id
func (mc *MeetingController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := mc.findVisible(c, userID)
	if err != nil {
		return err
	}
	users, err := mc.userDirectory(c.UserContext(), *m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendees")
	}
	return helper.JsonOK(c, "Meeting", dto.FromModel(m, userID, users))
}

// PATCH /api/meetings/:id/rsvp {status}
func (mc *MeetingController) RSVP(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting id")
	}

	var req dto.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := mc.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	now := time.Now().UTC()
	res := mc.DB.WithContext(c.UserContext()).
		Model(&model.MeetingAttendeeModel{}).
		Where("meeting_attendee_meeting_id = ? AND meeting_attendee_user_id = ?", meetingID, userID).
		Updates(map[string]any{
			"meeting_attendee_status":       req.Status,
			"meeting_attendee_responded_at": now,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update RSVP")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "You are not invited to this meeting")
	}
	return helper.JsonUpdated(c, "RSVP updated", fiber.Map{"meeting_id": meetingID, "status": req.Status, "responded_at": now})
}

// DELETE /api/meetings/:id (organizer only)
func (mc *MeetingController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := mc.findVisible(c, userID)
	if err != nil {
		return err
	}
	if m.OrganizerID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the organizer can delete this meeting")
	}

	if err := mc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_attendee_meeting_id = ?", m.ID).Delete(&model.MeetingAttendeeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MeetingModel{}, "meeting_id = ?", m.ID).Error
	}); err != nil {
		log.Printf("[ERROR] delete meeting %s: %v", m.ID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete meeting")
	}
	return helper.JsonDeleted(c, "Meeting deleted", fiber.Map{"id": m.ID})
}

/* ===================== HELPERS ===================== */

// findVisible writes the error response itself; callers return err as-is.
func (mc *MeetingController) findVisible(c *fiber.Ctx, userID uuid.UUID) (*model.MeetingModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting id")
	}
	var m model.MeetingModel
	err = visibleTo(mc.DB.WithContext(c.UserContext()).Model(&model.MeetingModel{}), userID).
		Where("meeting_id = ?", id).
		Preload("Attendees").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Meeting not found")
	}
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load meeting")
	}
	return &m, nil
}

// userDirectory resolves names/emails of organizers and attendees.
func (mc *MeetingController) userDirectory(ctx context.Context, meetings ...model.MeetingModel) (map[uuid.UUID]dto.UserLite, error) {
	idSet := map[uuid.UUID]struct{}{}
	for _, m := range meetings {
		idSet[m.OrganizerID] = struct{}{}
		for _, a := range m.Attendees {
			idSet[a.UserID] = struct{}{}
		}
	}
	out := make(map[uuid.UUID]dto.UserLite, len(idSet))
	if len(idSet) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []userModel.UserModel
	if err := mc.DB.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return out, err
	}
	for _, u := range users {
		out[u.ID] = dto.UserLite{Name: u.Name, Email: u.Email}
	}
	return out, nil
}

func (mc *MeetingController) sendInvites(m model.MeetingModel, organizer string, users map[uuid.UUID]dto.UserLite) {
	to := make([]service.Recipient, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		if u, ok := users[a.UserID]; ok && u.Email != "" {
			to = append(to, service.Recipient{Name: u.Name, Email: u.Email})
		}
	}
	if len(to) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mc.Notifier.SendInvites(ctx, m, organizer, to); err != nil {
			log.Printf("[WARN] meeting %s invitations: %v", m.ID, err)
		}
	}()
}
