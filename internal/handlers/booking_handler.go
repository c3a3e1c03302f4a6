package handlers

import (
	"context"
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles bookings, their legs, payments and reviews
type BookingHandler struct {
	bookingService *services.BookingService
	audit          auditor
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, audit *services.AuditService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		audit:          newAuditor(audit),
		logger:         logger,
	}
}

// Register mounts the booking routes. Deletes are wrapped by the given guards.
func (h *BookingHandler) Register(rg *gin.RouterGroup, deleteGuards ...gin.HandlerFunc) {
	rg.GET("", h.ListBookings)
	rg.GET("/:id", h.GetBooking)
	rg.POST("", h.CreateBooking)
	rg.PUT("/:id", h.UpdateBooking)
	rg.DELETE("/:id", append(deleteGuards, h.DeleteBooking)...)
	rg.PATCH("/:id/status", h.UpdateStatus)

	rg.POST("/:id/passengers", h.AddPassenger)
	rg.DELETE("/:id/passengers/:passenger_id", h.RemovePassenger)
	rg.POST("/:id/accommodations", h.AddAccommodation)
	rg.DELETE("/:id/accommodations/:leg_id", h.RemoveAccommodation)
	rg.POST("/:id/transportations", h.AddTransportation)
	rg.DELETE("/:id/transportations/:leg_id", h.RemoveTransportation)
	rg.POST("/:id/activities", h.AddActivity)
	rg.DELETE("/:id/activities/:activity_id", h.RemoveActivity)

	rg.GET("/:id/payments", h.ListPayments)
	rg.POST("/:id/payments", h.RecordPayment)
	rg.GET("/:id/reviews", h.ListReviews)
	rg.POST("/:id/reviews", h.AddReview)
}

// ListBookings handles GET /bookings?q=&status=&passenger_id=
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var params database.BookingListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err.Error())
		return
	}
	params.Normalize()

	if params.Status != "" && !models.BookingStatus(params.Status).IsValid() {
		badRequest(c, "status must be Pending, Confirmed, Cancelled or Completed")
		return
	}

	bookings, err := h.bookingService.List(params)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.bookingService.Get(id)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"passengers": len(req.PassengerIDs),
	}).Info("Booking created")
	h.audit.record(c, "create", "booking", booking.ID, map[string]interface{}{"passenger_ids": req.PassengerIDs})

	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PUT /bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.bookingService.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "booking")
		return
	}

	h.audit.record(c, "update", "booking", id, map[string]interface{}{"changes": req})
	h.GetBooking(c)
}

// UpdateStatus handles PATCH /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	h.audit.record(c, "update_status", "booking", id, map[string]interface{}{"status": req.Status})
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /bookings/:id
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "booking")
		return
	}

	h.audit.record(c, "delete", "booking", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// AddPassenger handles POST /bookings/:id/passengers
func (h *BookingHandler) AddPassenger(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddBookingPassengerRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.bookingService.AddPassenger(c.Request.Context(), bookingID, req.PassengerID); err != nil {
		respondError(c, err, "booking or passenger")
		return
	}

	h.audit.record(c, "add_passenger", "booking", bookingID, map[string]interface{}{"passenger_id": req.PassengerID})
	c.JSON(http.StatusCreated, gin.H{"message": "Passenger added", "booking_id": bookingID, "passenger_id": req.PassengerID})
}

// RemovePassenger handles DELETE /bookings/:id/passengers/:passenger_id
func (h *BookingHandler) RemovePassenger(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}
	passengerID, ok := paramID(c, "passenger_id")
	if !ok {
		return
	}

	if err := h.bookingService.RemovePassenger(c.Request.Context(), bookingID, passengerID); err != nil {
		respondError(c, err, "booking passenger")
		return
	}

	h.audit.record(c, "remove_passenger", "booking", bookingID, map[string]interface{}{"passenger_id": passengerID})
	c.JSON(http.StatusOK, gin.H{"message": "Passenger removed"})
}

// AddAccommodation handles POST /bookings/:id/accommodations
func (h *BookingHandler) AddAccommodation(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddAccommodationLegRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, _, err := req.Dates(); err != nil {
		badRequest(c, err.Error())
		return
	}

	stay, total, err := h.bookingService.AddAccommodation(c.Request.Context(), bookingID, &req)
	if err != nil {
		respondError(c, err, "booking or accommodation")
		return
	}

	h.audit.record(c, "add_accommodation", "booking", bookingID, map[string]interface{}{"leg_id": stay.ID, "cost": stay.Cost})
	c.JSON(http.StatusCreated, gin.H{"accommodation": stay, "total_cost": total})
}

// RemoveAccommodation handles DELETE /bookings/:id/accommodations/:leg_id
func (h *BookingHandler) RemoveAccommodation(c *gin.Context) {
	h.removeLeg(c, "leg_id", "remove_accommodation", "booking accommodation", h.bookingService.RemoveAccommodation)
}

// AddTransportation handles POST /bookings/:id/transportations
func (h *BookingHandler) AddTransportation(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddTransportationLegRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	leg, total, err := h.bookingService.AddTransportation(c.Request.Context(), bookingID, &req)
	if err != nil {
		respondError(c, err, "booking or "+req.Kind)
		return
	}

	h.audit.record(c, "add_transportation", "booking", bookingID, map[string]interface{}{"leg_id": leg.ID, "kind": leg.TransportKind, "cost": leg.Cost})
	c.JSON(http.StatusCreated, gin.H{"transportation": leg, "total_cost": total})
}

// RemoveTransportation handles DELETE /bookings/:id/transportations/:leg_id
func (h *BookingHandler) RemoveTransportation(c *gin.Context) {
	h.removeLeg(c, "leg_id", "remove_transportation", "booking transportation", h.bookingService.RemoveTransportation)
}

// AddActivity handles POST /bookings/:id/activities
func (h *BookingHandler) AddActivity(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddBookingActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	reservation, total, err := h.bookingService.AddActivity(c.Request.Context(), bookingID, &req)
	if err != nil {
		respondError(c, err, "booking or activity")
		return
	}

	h.audit.record(c, "add_activity", "booking", bookingID, map[string]interface{}{"activity_id": req.ActivityID, "cost": reservation.Cost})
	c.JSON(http.StatusCreated, gin.H{"activity": reservation, "total_cost": total})
}

// RemoveActivity handles DELETE /bookings/:id/activities/:activity_id
func (h *BookingHandler) RemoveActivity(c *gin.Context) {
	h.removeLeg(c, "activity_id", "remove_activity", "booking activity", h.bookingService.RemoveActivity)
}

func (h *BookingHandler) removeLeg(c *gin.Context, param, action, entity string, remove func(ctx context.Context, bookingID, legID int64) (float64, error)) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}
	legID, ok := paramID(c, param)
	if !ok {
		return
	}

	total, err := remove(c.Request.Context(), bookingID, legID)
	if err != nil {
		respondError(c, err, entity)
		return
	}

	h.audit.record(c, action, "booking", bookingID, map[string]interface{}{param: legID})
	c.JSON(http.StatusOK, gin.H{"message": entity + " removed", "total_cost": total})
}

// ListPayments handles GET /bookings/:id/payments
func (h *BookingHandler) ListPayments(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	payments, err := h.bookingService.ListPayments(bookingID)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// RecordPayment handles POST /bookings/:id/payments
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	payment, err := h.bookingService.RecordPayment(c.Request.Context(), bookingID, &req)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	h.audit.record(c, "record_payment", "booking", bookingID, map[string]interface{}{
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	})
	c.JSON(http.StatusCreated, payment)
}

// UpdatePaymentStatus handles PATCH /payments/:id/status
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	paymentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.bookingService.UpdatePaymentStatus(c.Request.Context(), paymentID, models.PaymentStatus(req.Status))
	if err != nil {
		respondError(c, err, "payment")
		return
	}

	h.audit.record(c, "update_status", "payment", paymentID, map[string]interface{}{"status": req.Status})
	c.JSON(http.StatusOK, payment)
}

// ListReviews handles GET /bookings/:id/reviews
func (h *BookingHandler) ListReviews(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.bookingService.ListReviews(bookingID)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// AddReview handles POST /bookings/:id/reviews
func (h *BookingHandler) AddReview(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.bookingService.AddReview(bookingID, &req)
	if err != nil {
		respondError(c, err, "booking")
		return
	}

	h.audit.record(c, "create", "review", review.ID, map[string]interface{}{"booking_id": bookingID, "rating": review.Rating})
	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /reviews/:id
func (h *BookingHandler) DeleteReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.DeleteReview(id); err != nil {
		respondError(c, err, "review")
		return
	}

	h.audit.record(c, "delete", "review", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
