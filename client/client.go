package client

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
)

// Client talks to the articles API at Addr. Token, when set, is sent as a
// bearer token.
type Client struct {
	http.Client
	Addr  string
	Token string
}

// Article is the public representation of an article.
type Article struct {
	ID             string    `json:"id,omitempty"`
	AddedBy        string    `json:"addedBy,omitempty"`
	Text           string    `json:"text,omitempty"`
	SourceURL      string    `json:"sourceUrl,omitempty"`
	SourceType     string    `json:"sourceType,omitempty"`
	Language       string    `json:"language,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	NPositiveVotes int       `json:"nPositiveVotes"`
	PositiveVotes  []string  `json:"positiveVotes,omitempty"`
	NNegativeVotes int       `json:"nNegativeVotes"`
	NegativeVotes  []string  `json:"negativeVotes,omitempty"`
	Claims         []string  `json:"claims,omitempty"`
}

// Error is a non-2xx answer of the API.
type Error struct {
	StatusCode int
	Status     string `json:"status"`
	Message    string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("articles api: %d %s: %s", e.StatusCode, e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil {
			apiErr.Message = string(raw)
		}

		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// List returns a page of articles, newest first. Zero values use the
// server defaults.
func (c *Client) List(ctx context.Context, page, perPage int) ([]Article, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("perPage", strconv.Itoa(perPage))
	}

	path := "/articles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var articles []Article
	if err := c.do(ctx, http.MethodGet, path, nil, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Article, error) {
	var a Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// Create posts a new article. The server sets addedBy to the token's user.
func (c *Client) Create(ctx context.Context, a *Article) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPost, "/articles", a, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Replace overwrites the whole article stored under id.
func (c *Client) Replace(ctx context.Context, id string, a *Article) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+url.PathEscape(id), a, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Update changes only the fields present in fields.
func (c *Client) Update(ctx context.Context, id string, fields map[string]interface{}) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPatch, "/articles/"+url.PathEscape(id), fields, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil)
}
