package http

import (
	"time"

	"github.com/shareit/shareit-backend/internal/booking"
	itemHttp "github.com/shareit/shareit-backend/internal/item/http"
	"github.com/shareit/shareit-backend/internal/pkg/request"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

type CreateBookingBody struct {
	ItemID int64             `json:"itemId" binding:"required,gt=0"`
	Start  *request.DateTime `json:"start" binding:"required"`
	End    *request.DateTime `json:"end" binding:"required"`
}

// Validate performs custom validation for CreateBookingBody.
func (b *CreateBookingBody) Validate() error {
	return booking.ValidateWindow(b.Start.Time, b.End.Time)
}

type ApproveQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type BookingResponse struct {
	ID     int64            `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Booker userHttp.UserTag `json:"booker"`
	Item   itemHttp.ItemTag `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func newBookingList(list []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i, b := range list {
		out[i] = NewBookingResponse(b)
	}
	return out
}
