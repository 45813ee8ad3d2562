// Package apiclient talks to a running streaks server.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/brk3/streaks/internal/server"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/brk3/streaks/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&body) == nil && body.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, res.Status, body.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) ListSummaries(ctx context.Context) ([]server.BoardSummary, error) {
	var response server.BoardListResponse
	if err := c.do(ctx, http.MethodGet, "/boards/", &response); err != nil {
		return nil, err
	}
	return response.Boards, nil
}

// ListBoards fetches every board in full, one request per board.
func (c *Client) ListBoards(ctx context.Context) ([]*streak.Board, error) {
	summaries, err := c.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	boards := make([]*streak.Board, 0, len(summaries))
	for _, s := range summaries {
		b, err := c.GetBoard(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

func (c *Client) GetBoard(ctx context.Context, id string) (*streak.Board, error) {
	var out server.BoardGetResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return out.Board, nil
}

func (c *Client) Toggle(ctx context.Context, id string, idx int) (*server.DayResponse, error) {
	var out server.DayResponse
	path := "/boards/" + url.PathEscape(id) + "/days/" + strconv.Itoa(idx) + "/toggle"
	if err := c.do(ctx, http.MethodPost, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/version", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
