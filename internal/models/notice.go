package models

import "time"

// Notice is an announcement published by an administrator.
type Notice struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// NoticePatch carries the fields of a partial notice update; nil fields are left untouched.
type NoticePatch struct {
	Title       *string
	Description *string
	Date        *time.Time
}

// Empty reports whether the patch changes nothing.
func (p NoticePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil
}

// Apply returns a copy of n with the patch applied.
func (p NoticePatch) Apply(n Notice) Notice {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Date != nil {
		n.Date = *p.Date
	}
	return n
}
