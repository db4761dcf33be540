package lostfound

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/campusfound/campusfound-go/transport"
)

const (
	pathUserRegister       = "/api/user/register"
	pathUserProfile        = "/api/user/profile"
	pathUserCheckUsername  = "/api/user/check-username"
	pathUserCheckStudentID = "/api/user/check-student-id"
	pathUsersAll           = "/api/users/all"
)

// UsersAPI is the normal-user account surface.
type UsersAPI struct {
	p *transport.Pipeline
}

// NewUsers binds the user surface to a pipeline.
func NewUsers(p *transport.Pipeline) *UsersAPI {
	return &UsersAPI{p: p}
}

// Register creates a new account.
func (a *UsersAPI) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	data, err := a.p.Post(ctx, pathUserRegister, req)
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

// Profile fetches one user by id.
func (a *UsersAPI) Profile(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	data, err := a.p.Get(ctx, fmt.Sprintf("%s/%d", pathUserProfile, id), nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

// UpdateProfile replaces the mutable profile fields.
func (a *UsersAPI) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	if req.ID <= 0 {
		return ErrInvalidID
	}
	if req.StudentID == "" || req.Username == "" {
		return ErrMissingField
	}
	_, err := a.p.Put(ctx, pathUserProfile, req)
	return err
}

// CheckUsername reports whether a username is already taken.
func (a *UsersAPI) CheckUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, ErrMissingField
	}
	return a.checkTaken(ctx, pathUserCheckUsername+"/"+url.PathEscape(username))
}

// CheckStudentID reports whether a student number is already registered.
func (a *UsersAPI) CheckStudentID(ctx context.Context, studentID string) (bool, error) {
	if studentID == "" {
		return false, ErrMissingField
	}
	return a.checkTaken(ctx, pathUserCheckStudentID+"/"+url.PathEscape(studentID))
}

// All lists accounts for the administration surface, optionally filtered by
// keyword.
func (a *UsersAPI) All(ctx context.Context, keyword string, page Page) (*PageResult[User], error) {
	v := page.values()
	if keyword != "" {
		v.Set("keyword", keyword)
	}
	data, err := a.p.Get(ctx, pathUsersAll, v)
	if err != nil {
		return nil, err
	}
	var result PageResult[User]
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode user page: %w", err)
	}
	return &result, nil
}

func (a *UsersAPI) checkTaken(ctx context.Context, path string) (bool, error) {
	data, err := a.p.Get(ctx, path, nil)
	if err != nil {
		return false, err
	}
	var taken bool
	if err := json.Unmarshal(data, &taken); err != nil {
		// Some deployments wrap the flag.
		var wrapped struct {
			Exists bool `json:"exists"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return false, fmt.Errorf("decode availability check: %w", err)
		}
		taken = wrapped.Exists
	}
	return taken, nil
}

func decodeUser(data json.RawMessage) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
