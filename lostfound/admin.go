package lostfound

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/campusfound/campusfound-go/transport"
)

const (
	pathAdminProfile = "/api/admin/lost-item/profile"
	pathAdminsAll    = "/api/admin/all"
)

// AdminAPI is the administrator account surface.
type AdminAPI struct {
	p *transport.Pipeline
}

// NewAdmin binds the admin surface to a pipeline.
func NewAdmin(p *transport.Pipeline) *AdminAPI {
	return &AdminAPI{p: p}
}

// Profile fetches one lost-item administrator by id.
func (a *AdminAPI) Profile(ctx context.Context, id int64) (*Admin, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	data, err := a.p.Get(ctx, fmt.Sprintf("%s/%d", pathAdminProfile, id), nil)
	if err != nil {
		return nil, err
	}
	var admin Admin
	if err := json.Unmarshal(data, &admin); err != nil {
		return nil, fmt.Errorf("decode admin: %w", err)
	}
	return &admin, nil
}

// All lists every administrator account.
func (a *AdminAPI) All(ctx context.Context) ([]Admin, error) {
	data, err := a.p.Get(ctx, pathAdminsAll, nil)
	if err != nil {
		return nil, err
	}
	var admins []Admin
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, fmt.Errorf("decode admin list: %w", err)
	}
	return admins, nil
}

// Sort orders accepted by the paged super-admin listings.
const (
	SortByCreateTime = "create_time"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// ListQuery shapes the paged super-admin listings. Zero values fall back to
// create-time descending.
type ListQuery struct {
	Keyword   string
	SortBy    string
	SortOrder string
	Page
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	p := q.Page.normalized()
	v.Set("pageNum", fmt.Sprint(p.Num))
	v.Set("pageSize", fmt.Sprint(p.Size))
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByCreateTime
	}
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = SortOrderDesc
	}
	v.Set("sortBy", sortBy)
	v.Set("sortOrder", sortOrder)
	return v
}

// SuperAdminAPI is the paged account administration surface reserved for
// the super-admin role. Authorization is the server's call; this client
// only shapes the requests.
type SuperAdminAPI struct {
	p *transport.Pipeline
}

// NewSuperAdmin binds the super-admin surface to a pipeline.
func NewSuperAdmin(p *transport.Pipeline) *SuperAdminAPI {
	return &SuperAdminAPI{p: p}
}

// Users lists user accounts, paged and sorted.
func (a *SuperAdminAPI) Users(ctx context.Context, q ListQuery) (*PageResult[User], error) {
	data, err := a.p.Get(ctx, pathUsersAll, q.values())
	if err != nil {
		return nil, err
	}
	var result PageResult[User]
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode user page: %w", err)
	}
	return &result, nil
}

// Admins lists administrator accounts, paged and sorted.
func (a *SuperAdminAPI) Admins(ctx context.Context, q ListQuery) (*PageResult[Admin], error) {
	data, err := a.p.Get(ctx, pathAdminsAll, q.values())
	if err != nil {
		return nil, err
	}
	var result PageResult[Admin]
	if err := json.Unmarshal(data, &result); err == nil && result.Records != nil {
		return &result, nil
	}
	var admins []Admin
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, fmt.Errorf("decode admin page: %w", err)
	}
	return &PageResult[Admin]{
		Records: admins,
		Total:   int64(len(admins)),
		PageNum: DefaultPageNum,
		Size:    len(admins),
	}, nil
}
