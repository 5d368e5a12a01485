package client

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates an account and signs the session in
func (c *Client) Register(ctx context.Context, username, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/register", username, password)
}

// Login signs the session in
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*User, error) {
	var resp authResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	user := resp.User
	c.session.Set(resp.Token, &user)
	return &user, nil
}

// Logout clears the session. Tokens are stateless, so the server is not called.
func (c *Client) Logout() {
	c.session.Clear()
}

// Me returns the signed-in user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (f TaskFilter) values() url.Values {
	q := url.Values{}
	if f.SearchText != "" {
		q.Set("searchText", f.SearchText)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.ProjectID != "" {
		q.Set("projectId", f.ProjectID)
	}
	return q
}

// ListTasks returns the tasks matching f, newest first
func (c *Client) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", f.values(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask adds a task
func (c *Client) CreateTask(ctx context.Context, in TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the fields set in in
func (c *Client) UpdateTask(ctx context.Context, id string, in TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}

// TaskStats returns the dashboard counters
func (c *Client) TaskStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/tasks/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportCSV returns the CSV export of the tasks matching f
func (c *Client) ExportCSV(ctx context.Context, f TaskFilter) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/export/tasks/csv", f.values(), nil)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// ListProjects returns every project
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject adds a project
func (c *Client) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	var project Project
	body := map[string]string{"name": name, "description": description}
	if err := c.do(ctx, http.MethodPost, "/projects", nil, body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject renames or redescribes a project
func (c *Client) UpdateProject(ctx context.Context, id, name, description string) (*Project, error) {
	var project Project
	body := map[string]string{"name": name, "description": description}
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), nil, body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project; its tasks keep a dangling reference
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, nil)
}

// ListUsers returns every user
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListComments returns the comments on a task, oldest first
func (c *Client) ListComments(ctx context.Context, taskID string) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/comments/task/"+url.PathEscape(taskID), nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment comments on a task as the signed-in user
func (c *Client) AddComment(ctx context.Context, taskID, text string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"taskId": taskID, "commentText": text}
	if err := c.do(ctx, http.MethodPost, "/comments", nil, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// RecentHistory returns the latest history entries across all tasks
func (c *Client) RecentHistory(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.do(ctx, http.MethodGet, "/history", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// TaskHistory returns the history of one task
func (c *Client) TaskHistory(ctx context.Context, taskID string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.do(ctx, http.MethodGet, "/history/task/"+url.PathEscape(taskID), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UnreadNotifications returns the signed-in user's unread notifications
func (c *Client) UnreadNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsRead marks every notification of the signed-in user as read
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read", nil, nil, nil)
}

// Report fetches one of the grouped-count reports: "tasks", "projects" or "users"
func (c *Client) Report(ctx context.Context, reportType string) (*Report, error) {
	var report Report
	if err := c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(reportType), nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
