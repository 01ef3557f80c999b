// Package googletasks implements storage.Store on the Google Tasks API.
//
// Each key is a Google Tasks list with that exact title. The stored value is
// the JSON array of the list's open task titles in position order, so a
// list mirrored here can also be read and edited from any Google Tasks
// client.
package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"ltask/internal/config"
	"ltask/internal/storage"
)

const (
	// PageSize is the number of items requested per API page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"
)

// Client implements storage.Store using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

var _ storage.Store = (*Client)(nil)

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// Get returns the open task titles of the list titled key.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, storage.ErrKeyRequired
	}
	list, err := c.findList(ctx, key)
	if err != nil {
		return "", false, err
	}
	if list == nil {
		return "", false, nil
	}

	items, err := c.openTasks(ctx, list.Id)
	if err != nil {
		return "", false, err
	}
	titles := make([]string, len(items))
	for i, t := range items {
		titles[i] = t.Title
	}
	data, err := json.Marshal(titles)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set makes the open tasks of the list titled key match the titles in
// value, creating the list if needed. value must be a JSON array of
// strings.
//
// Tasks whose title is kept are left alone, so their notes, due dates and
// subtasks survive. Rows that changed text are patched in place, new rows
// are inserted, and tasks no longer listed are deleted last.
func (c *Client) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return storage.ErrKeyRequired
	}
	var titles []string
	if err := json.Unmarshal([]byte(value), &titles); err != nil {
		return fmt.Errorf("value for %s is not a list of titles: %w", key, err)
	}

	list, err := c.findList(ctx, key)
	if err != nil {
		return err
	}
	if list == nil {
		list, err = c.createList(ctx, key)
		if err != nil {
			return err
		}
	}

	existing, err := c.openTasks(ctx, list.Id)
	if err != nil {
		return err
	}

	plan := planSync(existing, titles)
	for _, p := range plan.retitle {
		if err := c.patchTitle(ctx, list.Id, p.task.Id, p.title); err != nil {
			return err
		}
	}

	// order tracks the kept tasks as the server currently has them.
	order := make([]string, 0, len(existing))
	for _, t := range existing {
		if !plan.drop[t.Id] {
			order = append(order, t.Id)
		}
	}

	previous := ""
	for i, title := range titles {
		target := plan.slots[i]
		switch {
		case target == nil:
			created, err := c.insertTask(ctx, list.Id, title, previous)
			if err != nil {
				return err
			}
			order = slices.Insert(order, i, created.Id)
			previous = created.Id
			continue
		case order[i] != target.Id:
			if err := c.moveTask(ctx, list.Id, target.Id, previous); err != nil {
				return err
			}
			from := slices.Index(order, target.Id)
			order = slices.Insert(slices.Delete(order, from, from+1), i, target.Id)
		}
		previous = target.Id
	}

	for _, t := range existing {
		if !plan.drop[t.Id] {
			continue
		}
		if err := c.deleteTask(ctx, list.Id, t.Id); err != nil {
			return err
		}
	}
	return nil
}

type retitle struct {
	task  *tasks.Task
	title string
}

// syncPlan maps wanted titles onto existing tasks.
type syncPlan struct {
	// slots[i] is the existing task that ends up at row i, nil for a new
	// task.
	slots   []*tasks.Task
	retitle []retitle
	drop    map[string]bool
}

// planSync matches each wanted title to the first unused task with the same
// title. Leftover tasks are reused in order for leftover titles, and what
// remains after that is dropped.
func planSync(existing []*tasks.Task, titles []string) syncPlan {
	plan := syncPlan{
		slots: make([]*tasks.Task, len(titles)),
		drop:  make(map[string]bool),
	}
	used := make([]bool, len(existing))
	for i, title := range titles {
		for j, t := range existing {
			if !used[j] && t.Title == title {
				plan.slots[i] = t
				used[j] = true
				break
			}
		}
	}

	j := 0
	for i, title := range titles {
		if plan.slots[i] != nil {
			continue
		}
		for j < len(existing) && used[j] {
			j++
		}
		if j == len(existing) {
			break
		}
		plan.slots[i] = existing[j]
		plan.retitle = append(plan.retitle, retitle{task: existing[j], title: title})
		used[j] = true
	}

	for j, t := range existing {
		if !used[j] {
			plan.drop[t.Id] = true
		}
	}
	return plan
}

// Remove deletes the list titled key, if it exists.
func (c *Client) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return storage.ErrKeyRequired
	}
	list, err := c.findList(ctx, key)
	if err != nil || list == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	if err := c.svc.Tasklists.Delete(list.Id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Keys returns the titles of all lists starting with prefix, sorted.
func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	lists, err := c.allLists(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, l := range lists {
		if strings.HasPrefix(l.Title, prefix) {
			keys = append(keys, l.Title)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements storage.Store. The client holds no resources.
func (c *Client) Close() error { return nil }

func (c *Client) allLists(ctx context.Context) ([]*tasks.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		result = append(result, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// findList returns the list titled title, nil if there is none.
func (c *Client) findList(ctx context.Context, title string) (*tasks.TaskList, error) {
	lists, err := c.allLists(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*tasks.TaskList
	for _, l := range lists {
		if l.Title == title {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous list name: %s", title)
	}
}

func (c *Client) createList(ctx context.Context, title string) (*tasks.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}
	return list, nil
}

// openTasks returns the top-level open tasks of a list in position order.
func (c *Client) openTasks(ctx context.Context, listID string) ([]*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []*tasks.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				if t.Parent == "" {
					result = append(result, t)
				}
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	// Positions are zero-padded, so string order is list order.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (c *Client) insertTask(ctx context.Context, listID, title, previous string) (*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx)
	if previous != "" {
		call = call.Previous(previous)
	}
	created, err := call.Do()
	if err != nil {
		return nil, wrapError(err)
	}
	return created, nil
}

func (c *Client) patchTitle(ctx context.Context, listID, taskID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	patch := &tasks.Task{Title: title, ForceSendFields: []string{"Title"}}
	if _, err := c.svc.Tasks.Patch(listID, taskID, patch).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// moveTask places a task right after previous, or first when previous is
// empty.
func (c *Client) moveTask(ctx context.Context, listID, taskID, previous string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.svc.Tasks.Move(listID, taskID).Context(ctx)
	if previous != "" {
		call = call.Previous(previous)
	}
	if _, err := call.Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func (c *Client) deleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return authErrorf("token expired or revoked (run: ltask login)")
	}

	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
