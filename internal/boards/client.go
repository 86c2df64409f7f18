package boards

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// batchSize is the work-items API's hard limit per detail request.
const batchSize = 200

// ErrUpstream wraps every failure talking to the board API. Handlers map it
// to 502 so the response cache never stores the failure.
var ErrUpstream = errors.New("boards: upstream request failed")

// workItemFields is the field projection requested for story details.
var workItemFields = strings.Join([]string{
	"System.Id",
	"System.WorkItemType",
	"System.Title",
	"System.State",
	"System.AssignedTo",
	"Microsoft.VSTS.Scheduling.Effort",
	"Microsoft.VSTS.Common.Priority",
	"System.Tags",
	"System.ChangedDate",
	"Microsoft.VSTS.Scheduling.TargetDate",
}, ",")

// Config carries the upstream connection settings.
type Config struct {
	Organization string        `env:"BOARDS_ORG,required"`
	Token        string        `env:"BOARDS_PAT,required"`
	BaseURL      string        `env:"BOARDS_BASE_URL" envDefault:"https://dev.azure.com"`
	Timeout      time.Duration `env:"BOARDS_TIMEOUT" envDefault:"30s"`
}

// Iteration is one sprint as reported by the board API.
type Iteration struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Attributes struct {
		StartDate  string `json:"startDate"`
		FinishDate string `json:"finishDate"`
		TimeFrame  string `json:"timeFrame"`
	} `json:"attributes"`
}

// WorkItem is a raw work item; Fields is the loosely-typed projection the
// API returns, normalized into Story by the transform layer.
type WorkItem struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Client talks to the board REST API using PAT basic auth.
type Client struct {
	baseURL    string
	org        string
	authHeader string
	httpClient *http.Client

	now func() time.Time // stubbed in tests
}

// NewClient builds a client from config. The PAT goes into a basic-auth
// header with an empty username, as the API requires.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		org:        url.PathEscape(cfg.Organization),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+cfg.Token)),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// CurrentIteration returns the team's active sprint, preferring the
// iteration whose date range covers today, then the one the API marks
// current, then the most recent one. Returns nil without error when the
// team has no iterations at all.
func (c *Client) CurrentIteration(ctx context.Context, project, team string) (*Iteration, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/_apis/work/teamsettings/iterations?api-version=7.1",
		c.baseURL, c.org, url.PathEscape(project), url.PathEscape(team))

	var out struct {
		Value []Iteration `json:"value"`
	}
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}
	iterations := out.Value
	if len(iterations) == 0 {
		return nil, nil
	}

	now := c.now()
	for i, iter := range iterations {
		start, errS := time.Parse(time.RFC3339, iter.Attributes.StartDate)
		end, errE := time.Parse(time.RFC3339, iter.Attributes.FinishDate)
		if errS != nil || errE != nil {
			continue
		}
		if !now.Before(start) && !now.After(end) {
			return &iterations[i], nil
		}
	}
	for i, iter := range iterations {
		if iter.Attributes.TimeFrame == "current" {
			return &iterations[i], nil
		}
	}
	return &iterations[len(iterations)-1], nil
}

// QueryWorkItemIDs runs a WIQL query for the stories and bugs under the
// iteration path, ordered by priority then recency.
func (c *Client) QueryWorkItemIDs(ctx context.Context, project, iterationPath string) ([]int, error) {
	u := fmt.Sprintf("%s/%s/%s/_apis/wit/wiql?api-version=7.1",
		c.baseURL, c.org, url.PathEscape(project))

	wiql := fmt.Sprintf(`
		SELECT [System.Id]
		FROM WorkItems
		WHERE [System.TeamProject] = '%s'
		  AND [System.WorkItemType] IN ('User Story', 'Bug')
		  AND [System.IterationPath] UNDER '%s'
		ORDER BY [Microsoft.VSTS.Common.Priority] ASC, [System.ChangedDate] DESC`,
		wiqlEscape(project), wiqlEscape(iterationPath))

	var out struct {
		WorkItems []struct {
			ID int `json:"id"`
		} `json:"workItems"`
	}
	if err := c.post(ctx, u, map[string]string{"query": wiql}, &out); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(out.WorkItems))
	for _, wi := range out.WorkItems {
		ids = append(ids, wi.ID)
	}
	return ids, nil
}

// WorkItems fetches details for the given IDs in API-sized batches.
func (c *Client) WorkItems(ctx context.Context, ids []int) ([]WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	items := make([]WorkItem, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))

		joined := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			joined = append(joined, strconv.Itoa(id))
		}
		u := fmt.Sprintf("%s/%s/_apis/wit/workitems?ids=%s&fields=%s&api-version=7.1",
			c.baseURL, c.org, strings.Join(joined, ","), url.QueryEscape(workItemFields))

		var out struct {
			Value []WorkItem `json:"value"`
		}
		if err := c.get(ctx, u, &out); err != nil {
			return nil, err
		}
		items = append(items, out.Value...)
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return c.do(ctx, http.MethodPost, url, bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s", ErrUpstream, resp.Status, req.URL.Path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return nil
}

// wiqlEscape doubles single quotes for safe WIQL string interpolation.
func wiqlEscape(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
