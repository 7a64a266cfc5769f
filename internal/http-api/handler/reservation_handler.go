package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const reserveSuccessMessage = "Book reserved successfully"

type ReservationHandler struct {
	svc           service.ReservationService
	logger        *slog.Logger
	exposeDetails bool
}

// NewReservationHandler builds the handler. With exposeDetails unset,
// unexpected failures answer with a generic message and the cause is only
// logged.
func NewReservationHandler(svc service.ReservationService, logger *slog.Logger, exposeDetails bool) *ReservationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationHandler{svc: svc, logger: logger, exposeDetails: exposeDetails}
}

func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(slices.Clone(mw), h.Reserve)
	rg.POST("/:id/reserve", handlers...)
}

func (h *ReservationHandler) Reserve(c *gin.Context) {
	// a non numeric id can never match a book, so it is passed on as 0 and
	// the email check still runs first
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		id = 0
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.Reserve(ctx, id, requestEmail(c))
	if err != nil {
		status, msg := reservationErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("reserve_request_failed", "book_id", id, "error", err)
			if h.exposeDetails {
				msg = "Reservation failed: " + err.Error()
			}
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	h.logger.Debug("reserve_request_succeeded", "book_id", result.BookID)
	c.JSON(http.StatusOK, gin.H{"message": reserveSuccessMessage})
}

// requestEmail reads the email from a JSON or form body and falls back to
// the query string.
func requestEmail(c *gin.Context) string {
	var in dto.ReserveBookDTO
	if c.Request.ContentLength != 0 {
		// a malformed body is treated as a missing email
		_ = c.ShouldBind(&in)
	}
	if strings.TrimSpace(in.Email) == "" {
		in.Email = c.Query("email")
	}
	return in.Email
}

// reservationErrorStatus maps every reservation failure to a status and a
// response message. Anything that is not a typed reservation error is an
// internal failure.
func reservationErrorStatus(err error) (int, string) {
	rerr, ok := service.AsReservationError(err)
	if !ok {
		return http.StatusInternalServerError, "Reservation failed: internal error"
	}
	switch rerr.Kind {
	case service.ErrKindInvalidEmail:
		return http.StatusUnprocessableEntity, rerr.Message
	case service.ErrKindNotFound:
		return http.StatusNotFound, rerr.Message
	case service.ErrKindUnavailable:
		return http.StatusBadRequest, rerr.Message
	}
	return http.StatusInternalServerError, "Reservation failed: internal error"
}
