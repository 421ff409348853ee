package http

import (
	"time"

	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/request"
)

type CreateItemBody struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

// UpdateItemBody defines fields allowed to be updated via PATCH /items/:id.
type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type SearchQuery struct {
	request.PageParams
	Text string `form:"text"`
}

type CommentBody struct {
	Text string `json:"text" binding:"required,notblank"`
}

type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId"`
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newBookingShort(ref *item.BookingRef) *BookingShort {
	if ref == nil {
		return nil
	}
	return &BookingShort{ID: ref.ID, BookerID: ref.BookerID}
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.Created,
	}
}

func NewItemResponse(it *item.Item) ItemResponse {
	comments := make([]CommentResponse, len(it.Comments))
	for i := range it.Comments {
		comments[i] = NewCommentResponse(&it.Comments[i])
	}

	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		LastBooking: newBookingShort(it.LastBooking),
		NextBooking: newBookingShort(it.NextBooking),
		Comments:    comments,
	}
}

func newItemList(items []*item.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it)
	}
	return out
}
