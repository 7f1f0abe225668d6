package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mentorship/admin/internal/config"
	"mentorship/admin/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type AdminClient interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) error
	DeleteCategory(ctx context.Context, id string) error
	CreateSubcategory(ctx context.Context, categoryID string, in domain.SubcategoryInput) (domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, categoryID, id string, update domain.SubcategoryUpdate) error
	DeleteSubcategory(ctx context.Context, categoryID, id string) error

	ListPages(ctx context.Context) ([]domain.StaticPage, error)
	CreatePage(ctx context.Context, in domain.PageInput) (domain.StaticPage, error)
	UpdatePage(ctx context.Context, id string, update domain.PageUpdate) error
	DeletePage(ctx context.Context, id string) error

	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	CreateFAQ(ctx context.Context, in domain.FAQInput) (domain.FAQ, error)
	UpdateFAQ(ctx context.Context, id string, in domain.FAQInput) error
	DeleteFAQ(ctx context.Context, id string) error

	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	CreateTeamMember(ctx context.Context, in domain.TeamMemberInput) (domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id string, in domain.TeamMemberInput) error
	DeleteTeamMember(ctx context.Context, id string) error

	GetWebsiteStats(ctx context.Context) (domain.WebsiteStats, error)
	UpdateWebsiteStats(ctx context.Context, stats domain.WebsiteStats) error

	ListStaff(ctx context.Context) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, id string, update domain.AccountUpdate) error
	DeleteStaff(ctx context.Context, id string) error
	ListStudents(ctx context.Context) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, id string, update domain.AccountUpdate) error
	DeleteStudent(ctx context.Context, id string) error
}

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Message string          `json:"message"`
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type adminClient struct {
	rl         ratelimit.Limiter
	config     config.APIConfig
	httpClient *resty.Client
}

func NewAdminClient(cfg config.APIConfig) AdminClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &adminClient{
		rl:         rl,
		config:     cfg,
		httpClient: client,
	}
}

// doJSON sends body as JSON and decodes the envelope's data into out.
func (c *adminClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return c.execute(ctx, req, method, path, out)
}

// doMultipart sends fields (and an optional file) as multipart/form-data.
func (c *adminClient) doMultipart(ctx context.Context, method, path string, fields map[string]string, file *upload, out any) error {
	req := c.httpClient.R().
		SetContext(ctx).
		SetMultipartFormData(fields)
	if file != nil {
		req.SetFileReader(file.field, file.name, file.reader)
	}
	return c.execute(ctx, req, method, path, out)
}

func (c *adminClient) execute(ctx context.Context, req *resty.Request, method, path string, out any) error {
	c.rl.Take()

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	raw := resp.String()

	if resp.IsError() {
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
		}
		var env envelope
		if json.Unmarshal([]byte(raw), &env) == nil {
			apiErr.Message = env.Message
		}
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode(),
		}).Warnf("⚠️ API request failed: %s", apiErr.Message)
		return apiErr
	}

	var env envelope
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}

	if env.Success != nil && !*env.Success {
		return &RejectedError{Method: method, Path: path, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: failed to decode data: %w", method, path, err)
		}
	}

	log.Debugf("%s %s -> %d", method, path, resp.StatusCode())
	return nil
}

type upload struct {
	field  string
	name   string
	reader io.Reader
}

func (c *adminClient) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *adminClient) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
