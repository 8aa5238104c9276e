package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

// Messages shown to requesters, in the clinic's two languages.
var kindMessages = map[booking.ErrorKind]string{
	booking.KindPastDate:           "الموعد يجب أن يكون في المستقبل / Appointment must be in the future",
	booking.KindOutsideHours:       "مواعيد الحجز متاحة من 8 صباحاً حتى 8 مساءً / Appointments available from 8 AM to 8 PM",
	booking.KindClosedDay:          "لا يمكن الحجز يوم الجمعة / Appointments not available on Fridays",
	booking.KindInvalidRole:        "المستخدم المحدد غير صالح لهذا الحجز / Selected user is not valid for this booking",
	booking.KindPatientDayConflict: "المريض لديه حجز آخر في نفس اليوم / Patient already has a booking on that day",
	booking.KindDoctorSlotConflict: "الطبيب غير متاح في هذا الوقت / Doctor is not available at this time",
	booking.KindStaleWrite:         "تم تعديل الحجز من طلب آخر / Booking was modified by another request",
	booking.KindNotFound:           "الحجز غير موجود / Booking not found",
	booking.KindUnavailable:        "الخدمة غير متاحة حالياً / Service temporarily unavailable",
}

var kindStatus = map[booking.ErrorKind]int{
	booking.KindPastDate:           http.StatusBadRequest,
	booking.KindOutsideHours:       http.StatusBadRequest,
	booking.KindClosedDay:          http.StatusBadRequest,
	booking.KindInvalidRole:        http.StatusForbidden,
	booking.KindPatientDayConflict: http.StatusConflict,
	booking.KindDoctorSlotConflict: http.StatusConflict,
	booking.KindStaleWrite:         http.StatusConflict,
	booking.KindNotFound:           http.StatusNotFound,
	booking.KindUnavailable:        http.StatusServiceUnavailable,
}

var transitionMessages = map[booking.TransitionErrorKind]string{
	booking.TransitionIllegal:  "تغيير الحالة غير مسموح / Status change not permitted",
	booking.TransitionNotOwner: "لا يمكن تعديل حجز لا يخصك / Cannot modify a booking that is not yours",
	booking.TransitionTerminal: "لا يمكن تعديل حجز ملغي أو مكتمل / Cannot modify a cancelled or completed booking",
}

var transitionStatus = map[booking.TransitionErrorKind]int{
	booking.TransitionIllegal:  http.StatusConflict,
	booking.TransitionNotOwner: http.StatusForbidden,
	booking.TransitionTerminal: http.StatusConflict,
}

// Domain writes the HTTP rendering of a scheduling error. Unknown errors
// fall through to an opaque 500.
func Domain(c *gin.Context, err error) {
	if kind := booking.KindOf(err); kind != "" {
		Write(c, kindStatus[kind], string(kind), kindMessages[kind])
		return
	}

	if kind := booking.TransitionKindOf(err); kind != "" {
		Write(c, transitionStatus[kind], string(kind), transitionMessages[kind])
		return
	}

	Internal(c, "internal_error", "حدث خطأ غير متوقع / Unexpected error")
}
