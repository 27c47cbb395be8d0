package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"vitrin/internal/domain"
	applog "vitrin/internal/log"
)

// ListQuery is the wire-side shape of one paginated fetch. Skip is always
// derived by the caller as (page-1)*pageSize, never stored.
type ListQuery struct {
	Q      string
	Limit  int
	Skip   int
	SortBy string
	Order  string // "asc" | "desc" | ""
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("skip", strconv.Itoa(q.Skip))
	// Sorting is all-or-nothing: both key and direction, or neither.
	if q.SortBy != "" && q.Order != "" {
		v.Set("sortBy", q.SortBy)
		v.Set("order", q.Order)
	}
	return v
}

type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

type RecipePage struct {
	Recipes []domain.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

// Client wraps outbound calls to the remote storefront API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// do issues one request and decodes a 2xx body into out (if non-nil).
// Non-2xx becomes *Error{KindServer}; a transport failure becomes
// *Error{KindNetwork}. Returns the HTTP status (0 when no response).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) (int, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	lr := &applog.Req{ID: uuid.NewString(), Method: method, URL: u}
	req.Header.Set("X-Request-ID", lr.ID)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	lr.Latency = time.Since(start)
	if err != nil {
		applog.Error(lr, "api.network", err, nil)
		return 0, &Error{Kind: KindNetwork, Cause: err}
	}
	defer resp.Body.Close()
	lr.Status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		applog.Error(lr, "api.read", err, nil)
		return resp.StatusCode, &Error{Kind: KindNetwork, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Kind: KindServer, Status: resp.StatusCode, Body: raw}
		var em struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &em) == nil {
			apiErr.Message = em.Message
		}
		applog.Warn(lr, "api.rejected", map[string]any{"body_len": len(raw)})
		return resp.StatusCode, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			applog.Error(lr, "api.decode", err, nil)
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	applog.Info(lr, "api.ok", nil)
	return resp.StatusCode, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, int, error) {
	var s domain.Session
	status, err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &s)
	return s, status, err
}

// FetchProducts targets the search endpoint when a term is set, the plain
// listing otherwise.
func (c *Client) FetchProducts(ctx context.Context, q ListQuery) (ProductPage, int, error) {
	path := "/products"
	vals := q.values()
	if q.Q != "" {
		path = "/products/search"
		vals.Set("q", q.Q)
	}
	var page ProductPage
	status, err := c.do(ctx, http.MethodGet, path, vals, nil, &page)
	return page, status, err
}

func (c *Client) AddProduct(ctx context.Context, title string, price float64) (domain.Product, int, error) {
	var p domain.Product
	body := map[string]any{"title": title, "price": price}
	status, err := c.do(ctx, http.MethodPost, "/products/add", nil, body, &p)
	return p, status, err
}

// UpdateProduct is a full title+price replace, not a partial patch.
func (c *Client) UpdateProduct(ctx context.Context, id int, title string, price float64) (domain.Product, int, error) {
	var p domain.Product
	body := map[string]any{"title": title, "price": price}
	status, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, body, &p)
	return p, status, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int) (int, error) {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

// FetchRecipes always targets the search endpoint; an empty q lists all.
func (c *Client) FetchRecipes(ctx context.Context, q ListQuery) (RecipePage, int, error) {
	vals := q.values()
	vals.Set("q", q.Q)
	var page RecipePage
	status, err := c.do(ctx, http.MethodGet, "/recipes/search", vals, nil, &page)
	return page, status, err
}

func (c *Client) GetRecipe(ctx context.Context, id int) (domain.RecipeDetails, int, error) {
	var r domain.RecipeDetails
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, nil, &r)
	return r, status, err
}
