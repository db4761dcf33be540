package lostfound

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/campusfound/campusfound-go/transport"
)

const (
	pathItemsPublish = "/api/lost-items/publish"
	pathItemsClaim   = "/api/lost-items/claim"
	pathItems        = "/api/lost-items"
	pathItemsSearch  = "/api/lost-items/search"
	pathItemsAll     = "/api/lost-items/all"
	pathItemsByAdmin = "/api/lost-items/admin"
)

// ItemsAPI is the item surface: publish, claim, fetch, delete, and the
// paged listings.
type ItemsAPI struct {
	p *transport.Pipeline
}

// NewItems binds the item surface to a pipeline.
func NewItems(p *transport.Pipeline) *ItemsAPI {
	return &ItemsAPI{p: p}
}

// Publish files a new item and returns it as stored by the server.
func (a *ItemsAPI) Publish(ctx context.Context, req PublishRequest) (*LostItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	data, err := a.p.Post(ctx, pathItemsPublish, req)
	if err != nil {
		return nil, err
	}
	return decodeItem(data)
}

// Claim records a pickup against an item.
func (a *ItemsAPI) Claim(ctx context.Context, req ClaimRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	_, err := a.p.Post(ctx, pathItemsClaim, req)
	return err
}

// Get fetches one item by id.
func (a *ItemsAPI) Get(ctx context.Context, id int64) (*LostItem, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	data, err := a.p.Get(ctx, itemPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeItem(data)
}

// Delete removes one item by id.
func (a *ItemsAPI) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	_, err := a.p.Delete(ctx, itemPath(id))
	return err
}

// Search runs the public filtered search.
func (a *ItemsAPI) Search(ctx context.Context, q SearchQuery) (*PageResult[LostItem], error) {
	data, err := a.p.Get(ctx, pathItemsSearch, q.values())
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}

// Unclaimed lists items still waiting for their owner, one page at a time.
func (a *ItemsAPI) Unclaimed(ctx context.Context, page Page) (*PageResult[LostItem], error) {
	data, err := a.p.Get(ctx, pathItemsAll, page.values())
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}

// ByAdmin lists items published by one administrator.
func (a *ItemsAPI) ByAdmin(ctx context.Context, adminID int64, page Page) (*PageResult[LostItem], error) {
	if adminID <= 0 {
		return nil, ErrInvalidID
	}
	path := fmt.Sprintf("%s/%d", pathItemsByAdmin, adminID)
	data, err := a.p.Get(ctx, path, page.values())
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}

// all fetches the full unclaimed listing for statistic reductions, retrying
// on transient failures with policy.
func (a *ItemsAPI) all(ctx context.Context, policy transport.Policy) ([]LostItem, error) {
	data, err := a.p.SendWithRetry(ctx, "GET", pathItemsAll, nil, transport.SendOptions{}, policy)
	if err != nil {
		return nil, err
	}
	return decodeItemList(data)
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", pathItems, id)
}

func (p Page) values() url.Values {
	p = p.normalized()
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Num))
	v.Set("size", strconv.Itoa(p.Size))
	return v
}

func (q SearchQuery) values() url.Values {
	v := q.Page.values()
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Type.Valid() {
		v.Set("type", strconv.Itoa(int(q.Type)))
	}
	if q.Color.Valid() {
		v.Set("color", strconv.Itoa(int(q.Color)))
	}
	if q.Building != "" {
		v.Set("building", q.Building)
	}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	return v
}

func decodeItem(data json.RawMessage) (*LostItem, error) {
	var item LostItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return &item, nil
}

func decodePage(data json.RawMessage) (*PageResult[LostItem], error) {
	var page PageResult[LostItem]
	if err := json.Unmarshal(data, &page); err == nil && page.Records != nil {
		return &page, nil
	}
	// Some listings come back as a bare array.
	items, err := decodeItemList(data)
	if err != nil {
		return nil, err
	}
	return &PageResult[LostItem]{
		Records: items,
		Total:   int64(len(items)),
		PageNum: DefaultPageNum,
		Size:    len(items),
	}, nil
}

func decodeItemList(data json.RawMessage) ([]LostItem, error) {
	var items []LostItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var page PageResult[LostItem]
	if err := json.Unmarshal(data, &page); err != nil || page.Records == nil {
		return nil, fmt.Errorf("decode item list: unrecognized shape")
	}
	return page.Records, nil
}
