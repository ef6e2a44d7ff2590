package dto

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/society-be/internal/models"
)

type CreateNoticeRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Date        string `json:"date" validate:"required"`
}

// UpdateNoticeRequest leaves a field untouched when it is absent or empty.
type UpdateNoticeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

type NoticeUpdatedResponse struct {
	Notice models.Notice `json:"notice"`
}

// CreateMemberRequest accepts a role for compatibility with existing clients; it is never stored.
type CreateMemberRequest struct {
	Email    string            `json:"email" validate:"required,email"`
	Name     string            `json:"name" validate:"notblank,min=3"`
	Password string            `json:"password" validate:"min=5,max=72"`
	Phone    string            `json:"phone" validate:"min=10"`
	Address  string            `json:"Address" validate:"min=10"`
	RoomNo   models.FlexString `json:"roomNo" validate:"required"`
	Role     string            `json:"role"`
}

type CreateFundRequest struct {
	Information string  `json:"information" validate:"notblank,min=5"`
	Date        string  `json:"date" validate:"required"`
	Amount      *Amount `json:"amount" validate:"required"`
	User        string  `json:"User"`
}

// Amount decodes a JSON number or numeric string. Anything else is reported as a type
// error so the decoder attributes it to the enclosing field.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if err := a.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(a.Decimal)}
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}
