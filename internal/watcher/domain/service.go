package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	SetReviewStatus(ctx context.Context, req SetReviewStatusRequest) (*Response, error)
	SetKind(ctx context.Context, req SetKindRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Status string `form:"status"`
}

type SetReviewStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type SetKindRequest struct {
	ID        string `json:"-"`
	KindIndex int    `json:"kind_index"`
}

type Response struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ReviewStatus ReviewStatus `json:"review_status"`
	Kind         Kind         `json:"kind,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

var (
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidKind   = errors.New("invalid_kind")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("watcher_not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
