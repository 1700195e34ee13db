package alloy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/xxxsen/alloyctl/internal/applicant"
	"github.com/xxxsen/alloyctl/internal/config"

	pkgerrors "github.com/pkg/errors"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	evaluationsPath = "/evaluations/"
	parametersPath  = "/parameters/"
	userAgent       = "alloyctl"
)

// Client talks to the Alloy evaluation API with workflow basic auth.
type Client struct {
	baseURL    string
	token      string
	secret     string
	workflow   string
	httpClient *http.Client
}

// New creates a client from cfg. Missing credentials yield a
// *config.ConfigError and no client.
func New(cfg config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = config.DefaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, &config.ConfigError{Err: pkgerrors.Wrap(err, "invalid ALLOY_BASE_URL")}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	workflow := strings.TrimSpace(cfg.Workflow)
	if workflow == "" {
		workflow = config.DefaultWorkflow
	}

	return &Client{
		baseURL:  strings.TrimSuffix(u.String(), "/"),
		token:    strings.TrimSpace(cfg.WorkflowToken),
		secret:   strings.TrimSpace(cfg.WorkflowSecret),
		workflow: workflow,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// Workflow returns the workflow identifier sent with every evaluation.
func (c *Client) Workflow() string { return c.workflow }

func (c *Client) endpoint(p string) string {
	return c.baseURL + "/" + strings.TrimPrefix(p, "/")
}

func (c *Client) applyCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.SetBasicAuth(c.token, c.secret)
}

// Submit posts rec to the evaluations endpoint and returns the decoded body of
// a 200 response. Any other status or a network failure is a *TransportError.
func (c *Client) Submit(ctx context.Context, rec *applicant.Record) (Response, error) {
	payload, err := NewEvaluationRequest(c.workflow, rec)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation request: %w", err)
	}

	logutil.GetLogger(ctx).Info("submitting evaluation",
		zap.String("workflow", c.workflow),
		zap.Int("attribute_count", len(payload.Attributes)),
	)

	body, err := c.do(ctx, "submit evaluation", http.MethodPost, evaluationsPath, data)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode evaluation response: %w: %v", ErrMalformedBody, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("decode evaluation response: %w", ErrMalformedBody)
	}
	return resp, nil
}

// Parameters fetches the attribute schema of the configured workflow.
func (c *Client) Parameters(ctx context.Context) (*ParametersResponse, error) {
	body, err := c.do(ctx, "get parameters", http.MethodGet, parametersPath, nil)
	if err != nil {
		return nil, err
	}
	var params ParametersResponse
	if err := json.Unmarshal(body, &params); err != nil {
		return nil, fmt.Errorf("decode parameters response: %w: %v", ErrMalformedBody, err)
	}
	return &params, nil
}

func (c *Client) do(ctx context.Context, op, method, p string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(p), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	c.applyCommonHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	logutil.GetLogger(ctx).Info("alloy response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
