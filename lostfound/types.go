package lostfound

import (
	"errors"
	"time"
)

// Validation failures raised before a request leaves the process.
var (
	ErrMissingField = errors.New("lostfound: required field is empty")
	ErrInvalidID    = errors.New("lostfound: id must be positive")
)

// LostItem is the wire shape of one published item.
type LostItem struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Type             ItemType  `json:"type"`
	Color            Color     `json:"color"`
	Description      string    `json:"description"`
	FoundLocation    string    `json:"foundLocation"`
	Building         string    `json:"building"`
	SpecificLocation string    `json:"specificLocation"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	AdminID          int64     `json:"adminId"`
	ClaimerName      string    `json:"claimerName,omitempty"`
	PublishTime      time.Time `json:"publishTime"`
}

// Claimed reports whether the item has been picked up. The backend marks a
// claim by filling claimerName.
func (i LostItem) Claimed() bool { return i.ClaimerName != "" }

// PublishRequest carries a new item. ImageURL is the only optional field.
type PublishRequest struct {
	Name             string   `json:"name"`
	Type             ItemType `json:"type"`
	Color            Color    `json:"color"`
	Description      string   `json:"description"`
	FoundLocation    string   `json:"foundLocation"`
	Building         string   `json:"building"`
	SpecificLocation string   `json:"specificLocation"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	AdminID          int64    `json:"adminId"`
}

func (r PublishRequest) validate() error {
	switch {
	case r.Name == "", r.Description == "", r.FoundLocation == "",
		r.Building == "", r.SpecificLocation == "":
		return ErrMissingField
	case !r.Type.Valid(), !r.Color.Valid():
		return ErrMissingField
	case r.AdminID <= 0:
		return ErrInvalidID
	}
	return nil
}

// ClaimRequest records who is picking an item up and why.
type ClaimRequest struct {
	LostItemID  int64  `json:"lostItemId"`
	StudentID   int64  `json:"studentId"`
	ClaimReason string `json:"claimReason"`
	ContactInfo string `json:"contactInfo"`
}

func (r ClaimRequest) validate() error {
	if r.LostItemID <= 0 || r.StudentID <= 0 {
		return ErrInvalidID
	}
	if r.ClaimReason == "" || r.ContactInfo == "" {
		return ErrMissingField
	}
	return nil
}

// SearchQuery filters the public item search. Zero-valued fields are
// omitted from the query string.
type SearchQuery struct {
	Keyword   string
	Type      ItemType
	Color     Color
	Building  string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Page
}

// Page selects one slice of a listing. Zero values fall back to
// [DefaultPageNum] and [DefaultPageSize]; sizes above [MaxPageSize] are
// clamped.
type Page struct {
	Num  int
	Size int
}

func (p Page) normalized() Page {
	if p.Num < 1 {
		p.Num = DefaultPageNum
	}
	switch {
	case p.Size < 1:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

// PageResult is one slice of a paged listing plus its totals.
type PageResult[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	PageNum int   `json:"pageNum"`
	Size    int   `json:"pageSize"`
}

// User is the wire shape of a normal-user account.
type User struct {
	ID        int64  `json:"id"`
	StudentID string `json:"studentId"`
	Username  string `json:"username"`
	College   string `json:"college,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Admin is the wire shape of an administrator account.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterRequest creates a normal-user account. Phone and College are
// optional.
type RegisterRequest struct {
	StudentID string `json:"studentId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	College   string `json:"college,omitempty"`
}

func (r RegisterRequest) validate() error {
	if r.StudentID == "" || r.Username == "" || r.Password == "" {
		return ErrMissingField
	}
	return nil
}

// UpdateProfileRequest replaces the mutable profile fields. Password is
// only changed when non-empty.
type UpdateProfileRequest struct {
	ID        int64  `json:"id"`
	StudentID string `json:"studentId"`
	Username  string `json:"username"`
	College   string `json:"college,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password,omitempty"`
}
