package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"estatecli/internal/model"
)

// PropertyAPI covers listing CRUD and moderation.
type PropertyAPI interface {
	List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
	Get(ctx context.Context, id int64) (model.Property, error)
	Mine(ctx context.Context) ([]model.Property, error)
	Create(ctx context.Context, d PropertyDraft) (model.Property, error)
	Update(ctx context.Context, id int64, d PropertyDraft) (model.Property, error)
	Delete(ctx context.Context, id int64) error
	Verify(ctx context.Context, id int64) error
}

// PropertyDraft is the create/update payload. Validation tags are enforced
// client-side before any network call.
type PropertyDraft struct {
	Title           string                `json:"title" validate:"required,min=3"`
	Description     string                `json:"description"`
	PropertyType    string                `json:"propertyType" validate:"required"`
	TransactionType model.TransactionType `json:"transactionType" validate:"required,oneof=sale rent"`
	Price           float64               `json:"price" validate:"required,gt=0"`
	Currency        string                `json:"currency" validate:"required,len=3"`
	Size            float64               `json:"size" validate:"gt=0"`
	Rooms           int                   `json:"rooms" validate:"gte=0"`
	Address         string                `json:"address" validate:"required"`
	Facilities      string                `json:"facilities"`
}

func (a *Client) List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	var out []model.Property
	err := a.c.Do(ctx, http.MethodGet, "/api/properties"+filterQuery(f), nil, &out)
	return out, err
}

func (a *Client) Get(ctx context.Context, id int64) (model.Property, error) {
	var out model.Property
	err := a.c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/properties/%d", id), nil, &out)
	return out, err
}

func (a *Client) Mine(ctx context.Context) ([]model.Property, error) {
	var out []model.Property
	err := a.c.Do(ctx, http.MethodGet, "/api/properties/mine", nil, &out)
	return out, err
}

func (a *Client) Create(ctx context.Context, d PropertyDraft) (model.Property, error) {
	var out model.Property
	err := a.c.Do(ctx, http.MethodPost, "/api/properties", d, &out)
	return out, err
}

func (a *Client) Update(ctx context.Context, id int64, d PropertyDraft) (model.Property, error) {
	var out model.Property
	err := a.c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/properties/%d", id), d, &out)
	return out, err
}

func (a *Client) Delete(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/properties/%d", id), nil, nil)
}

func (a *Client) Verify(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodPatch, fmt.Sprintf("/api/properties/%d/verify", id), nil, nil)
}

func filterQuery(f model.PropertyFilter) string {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("status", string(f.Status))
	set("transactionType", string(f.TransactionType))
	set("propertyType", f.PropertyType)
	set("search", f.Search)
	set("sort", f.Sort)
	if f.MinPrice > 0 {
		set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinSize > 0 {
		set("minSize", strconv.FormatFloat(f.MinSize, 'f', -1, 64))
	}
	if f.MaxSize > 0 {
		set("maxSize", strconv.FormatFloat(f.MaxSize, 'f', -1, 64))
	}
	if f.Rooms > 0 {
		set("rooms", strconv.Itoa(f.Rooms))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
