package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"mission-tracker/internal/config"
)

// Client is a typed HTTP client for the mission tracker API.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.CLIConfig) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type apiError struct {
	Detail string `json:"detail"`
}

type BootstrapResult struct {
	MilestonesCreated int `json:"milestones_created"`
}

type RegisterResult struct {
	PlayerID string `json:"player_id"`
}

type Milestone struct {
	MilestoneID string `json:"milestone_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type CompleteResult struct {
	CoinsAwarded  int     `json:"av_coins_awarded"`
	Revenue       float64 `json:"revenue_usd"`
	UnlockedWorld *string `json:"unlocked_world"`
	Message       string  `json:"message"`
}

type PlayerSummary struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Coins               int      `json:"av_coins"`
	Revenue             float64  `json:"revenue_usd"`
	CompletedMilestones []string `json:"completed_milestones"`
	UnlockedWorlds      []string `json:"unlocked_worlds"`
}

type HealthStatus struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabasePath     string   `json:"database_path"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type registerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type completePayload struct {
	PlayerEmail     string  `json:"player_email"`
	MilestoneID     string  `json:"milestone_id"`
	Speed           string  `json:"speed,omitempty"`
	RevenueIncrease float64 `json:"revenue_increase"`
}

func (c *Client) Bootstrap(ctx context.Context) (*BootstrapResult, error) {
	return doRequest[BootstrapResult](ctx, c, fasthttp.MethodPost, c.baseURL+"/api/bootstrap", nil)
}

func (c *Client) RegisterPlayer(ctx context.Context, name, email string) (*RegisterResult, error) {
	payload := registerPayload{Name: name, Email: email}
	return doRequest[RegisterResult](ctx, c, fasthttp.MethodPost, c.baseURL+"/api/player", payload)
}

func (c *Client) Milestones(ctx context.Context) ([]Milestone, error) {
	milestones, err := doRequest[[]Milestone](ctx, c, fasthttp.MethodGet, c.baseURL+"/api/milestones", nil)
	if err != nil {
		return nil, err
	}
	return *milestones, nil
}

func (c *Client) Complete(ctx context.Context, email, milestoneID, speed string, revenueIncrease float64) (*CompleteResult, error) {
	payload := completePayload{
		PlayerEmail:     email,
		MilestoneID:     milestoneID,
		Speed:           speed,
		RevenueIncrease: revenueIncrease,
	}
	return doRequest[CompleteResult](ctx, c, fasthttp.MethodPost, c.baseURL+"/api/complete", payload)
}

func (c *Client) Summary(ctx context.Context, email string) (*PlayerSummary, error) {
	requestURL := fmt.Sprintf("%s/api/player/summary?email=%s", c.baseURL, url.QueryEscape(email))
	return doRequest[PlayerSummary](ctx, c, fasthttp.MethodGet, requestURL, nil)
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	return doRequest[HealthStatus](ctx, c, fasthttp.MethodGet, c.baseURL+"/test", nil)
}

func doRequest[T any](ctx context.Context, client *Client, method, requestURL string, body any) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(encoded)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() < fasthttp.StatusOK || resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		var detail apiError
		if err := json.Unmarshal(resp.Body(), &detail); err == nil && detail.Detail != "" {
			return nil, fmt.Errorf("API error: %d: %s", resp.StatusCode(), detail.Detail)
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
