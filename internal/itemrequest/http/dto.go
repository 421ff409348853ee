package http

import (
	"time"

	"github.com/shareit/shareit-backend/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required,notblank"`
}

type ItemReplyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
	OwnerID     int64  `json:"ownerId"`
}

type RequestResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	RequesterID int64               `json:"requesterId"`
	Created     time.Time           `json:"created"`
	Items       []ItemReplyResponse `json:"items"`
}

func NewRequestResponse(ir *itemrequest.ItemRequest) RequestResponse {
	items := make([]ItemReplyResponse, len(ir.Items))
	for i, it := range ir.Items {
		items[i] = ItemReplyResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
			OwnerID:     it.OwnerID,
		}
	}

	return RequestResponse{
		ID:          ir.ID,
		Description: ir.Description,
		RequesterID: ir.RequesterID,
		Created:     ir.Created,
		Items:       items,
	}
}

func newRequestList(list []*itemrequest.ItemRequest) []RequestResponse {
	out := make([]RequestResponse, len(list))
	for i, ir := range list {
		out[i] = NewRequestResponse(ir)
	}
	return out
}
