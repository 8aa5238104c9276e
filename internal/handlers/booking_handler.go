package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alnourclinic/clinic-scheduler/internal/dto"
	"github.com/alnourclinic/clinic-scheduler/internal/httperr"
	"github.com/alnourclinic/clinic-scheduler/internal/httpresp"
	"github.com/alnourclinic/clinic-scheduler/internal/middleware"
	usecase "github.com/alnourclinic/clinic-scheduler/internal/usecase/booking"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *usecase.CreateBooking
	reschedule *usecase.RescheduleBooking
	update     *usecase.UpdateBookingFields
	transition *usecase.TransitionStatus
	listSlots  *usecase.ListAvailableSlots
	list       *usecase.ListBookings
	get        *usecase.GetBooking
	stats      *usecase.BookingStats
	remove     *usecase.DeleteBooking

	loc *time.Location
}

func NewBookingHandler(
	create *usecase.CreateBooking,
	reschedule *usecase.RescheduleBooking,
	update *usecase.UpdateBookingFields,
	transition *usecase.TransitionStatus,
	listSlots *usecase.ListAvailableSlots,
	list *usecase.ListBookings,
	get *usecase.GetBooking,
	stats *usecase.BookingStats,
	remove *usecase.DeleteBooking,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		reschedule: reschedule,
		update:     update,
		transition: transition,
		listSlots:  listSlots,
		list:       list,
		get:        get,
		stats:      stats,
		remove:     remove,
		loc:        loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type UpdateBookingRequest struct {
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request",
			"بيانات الحجز غير صالحة / Invalid booking payload")
		return
	}

	scheduledAt, err := h.parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime",
			"صيغة التاريخ أو الوقت غير صحيحة / Invalid date or time format")
		return
	}

	// patients omit patient_id; it is always themselves
	patientID := req.PatientID
	if patientID == "" {
		patientID = actor.ID
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		Actor:       actor,
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: scheduledAt,
		Reason:      req.Reason,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.Created(c, "تم إنشاء الحجز بنجاح / Booking created successfully", dto.FromBooking(b))
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	view := usecase.ListView(c.Query("view"))
	switch view {
	case usecase.ViewAll, usecase.ViewToday, usecase.ViewUpcoming, usecase.ViewPast:
	default:
		httperr.BadRequest(c, "invalid_view",
			"طريقة العرض غير معروفة / Unknown list view")
		return
	}

	status := domain.Status(c.Query("status"))
	if status != "" && !domain.IsValidStatus(status) {
		httperr.BadRequest(c, "invalid_status",
			"حالة الحجز غير معروفة / Unknown booking status")
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), usecase.ListQuery{
		Actor:     actor,
		View:      view,
		Status:    status,
		DoctorID:  c.Query("doctor_id"),
		PatientID: c.Query("patient_id"),
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.List(c, "", dto.FromBookings(bookings))
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	b, err := h.get.Execute(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, "", dto.FromBooking(b))
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request",
			"بيانات التعديل غير صالحة / Invalid update payload")
		return
	}

	if req.Reason == nil && req.Notes == nil {
		httperr.BadRequest(c, "empty_update",
			"لا يوجد حقل للتعديل / No field to update")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), c.Param("id"),
		usecase.Fields{Reason: req.Reason, Notes: req.Notes}, actor)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, "تم تعديل الحجز / Booking updated", dto.FromBooking(b))
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request",
			"بيانات إعادة الجدولة غير صالحة / Invalid reschedule payload")
		return
	}

	scheduledAt, err := h.parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime",
			"صيغة التاريخ أو الوقت غير صحيحة / Invalid date or time format")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), c.Param("id"), scheduledAt, actor)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, "تمت إعادة جدولة الحجز / Booking rescheduled", dto.FromBooking(b))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, domain.StatusConfirmed, "",
		"تم تأكيد الحجز / Booking confirmed")
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.applyTransition(c, domain.StatusCompleted, "",
		"تم إكمال الحجز / Booking completed")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	// body is optional; cancelling without a reason is allowed
	_ = c.ShouldBindJSON(&req)

	h.applyTransition(c, domain.StatusCancelled, req.Reason,
		"تم إلغاء الحجز / Booking cancelled")
}

func (h *BookingHandler) applyTransition(c *gin.Context, next domain.Status, reason, message string) {
	actor := middleware.ActorFrom(c)

	b, err := h.transition.Execute(c.Request.Context(), c.Param("id"), next, reason, actor)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, message, dto.FromBooking(b))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), actor); err != nil {
		httperr.Domain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "تم حذف الحجز نهائياً / Booking permanently deleted",
	})
}

// ======================================================
// SLOTS / STATS
// ======================================================

func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	dateStr := c.Query("date")
	if doctorID == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_parameters",
			"معرف الطبيب والتاريخ مطلوبان / doctor_id and date are required")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date",
			"صيغة التاريخ غير صحيحة / Invalid date format")
		return
	}

	slots, err := h.listSlots.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Format("15:04"))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            dateStr,
		"doctor_id":       doctorID,
		"available_slots": times,
		"total":           len(times),
	})
}

func (h *BookingHandler) Stats(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	stats, err := h.stats.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, "", stats)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) parseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, h.loc)
}
