package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/api"
	"github.com/shareit/shareit-backend/internal/booking"
	bookingHttp "github.com/shareit/shareit-backend/internal/booking/http"
	"github.com/shareit/shareit-backend/internal/pkg/apperror"
	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/pkg/response"
)

const rawBodyKey = "gateway.rawBody"

var (
	ErrStartInPast    = apperror.New(apperror.KindValidation, "start must not be in the past")
	ErrEndNotInFuture = apperror.New(apperror.KindValidation, "end must be in the future")
)

type Handler struct {
	client Forwarder
	log    *zap.Logger
	now    func() time.Time
}

func NewHandler(client Forwarder, log *zap.Logger) *Handler {
	return &Handler{
		client: client,
		log:    log.Named("relay"),
		now:    time.Now,
	}
}

// Relay forwards the request, including any body validated earlier in the chain, and copies the core answer back.
func (h *Handler) Relay(c *gin.Context) {
	out := Outbound{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		UserID:    c.GetHeader(request.UserIDHeader),
		RequestID: api.GetRequestID(c),
	}
	if raw, ok := c.Get(rawBodyKey); ok {
		out.Body = raw.([]byte)
	}

	resp, err := h.client.Forward(c.Request.Context(), out)
	switch {
	case errors.Is(err, ErrCoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "service temporarily unavailable"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "bad gateway"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, contentType, resp.Body)
}

// CheckID rejects non-positive :id path parameters.
func CheckID(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// CheckPage validates from/size query parameters.
func CheckPage(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		c.Abort()
		return
	}
	if err := page.Validate(); err != nil {
		response.Error(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// CheckBookingList validates the state filter and the page window.
func CheckBookingList(c *gin.Context) {
	var q bookingHttp.ListBookingsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		c.Abort()
		return
	}
	if _, err := booking.ParseState(q.State); err != nil {
		response.Error(c, err)
		c.Abort()
		return
	}
	if err := q.PageParams.Validate(); err != nil {
		response.Error(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// CheckQuery binds the query string into T and rejects it on binding failures.
func CheckQuery[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q T
		if err := c.ShouldBindQuery(&q); err != nil {
			response.BindError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckJSON binds the body into T, runs the optional extra check and keeps the raw body for Relay.
func CheckJSON[T any](extra func(*T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			response.BindError(c, err)
			c.Abort()
			return
		}

		var body T
		if err := binding.JSON.BindBody(raw, &body); err != nil {
			response.BindError(c, err)
			c.Abort()
			return
		}
		if extra != nil {
			if err := extra(&body); err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
		}

		c.Set(rawBodyKey, raw)
		c.Next()
	}
}

// checkBookingWindow additionally requires a start that is not in the past and an end in the future.
func (h *Handler) checkBookingWindow(body *bookingHttp.CreateBookingBody) error {
	if err := body.Validate(); err != nil {
		return err
	}
	now := h.now()
	if body.Start.Before(now) {
		return ErrStartInPast
	}
	if !body.End.After(now) {
		return ErrEndNotInFuture
	}
	return nil
}
