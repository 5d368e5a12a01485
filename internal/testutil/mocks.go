// Package testutil provides in-memory repository doubles for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"tasktracker/internal/database"
	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTaskRepository is an in-memory TaskRepository.
// Setting an *Err field makes the matching method fail.
type MockTaskRepository struct {
	mu        sync.Mutex
	tasks     map[primitive.ObjectID]models.Task
	order     []primitive.ObjectID
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
}

// NewMockTaskRepository creates an empty repository
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (m *MockTaskRepository) Create(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	m.tasks[task.ID] = *task
	m.order = append(m.order, task.ID)
	return nil
}

func (m *MockTaskRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &task, nil
}

func (m *MockTaskRepository) Update(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return database.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	m.tasks[task.ID] = *task
	return nil
}

func (m *MockTaskRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.tasks[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.tasks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// List applies filter.Matches and returns the newest tasks first
func (m *MockTaskRepository) List(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := []models.Task{}
	for i := len(m.order) - 1; i >= 0; i-- {
		task := m.tasks[m.order[i]]
		if filter.Matches(&task) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *MockTaskRepository) ListAll(_ context.Context) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Task, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tasks[id])
	}
	return out, nil
}

// Count returns the number of stored tasks
func (m *MockTaskRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// MockProjectRepository is an in-memory ProjectRepository
type MockProjectRepository struct {
	mu        sync.Mutex
	projects  map[primitive.ObjectID]models.Project
	order     []primitive.ObjectID
	CreateErr error
	ListErr   error
}

// NewMockProjectRepository creates an empty repository
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{projects: make(map[primitive.ObjectID]models.Project)}
}

func (m *MockProjectRepository) Create(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	m.projects[project.ID] = *project
	m.order = append(m.order, project.ID)
	return nil
}

func (m *MockProjectRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &project, nil
}

func (m *MockProjectRepository) GetByName(_ context.Context, name string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		if p := m.projects[id]; p.Name == name {
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockProjectRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Project
	for _, id := range ids {
		if p, ok := m.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockProjectRepository) Update(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[project.ID]; !ok {
		return database.ErrNotFound
	}
	project.UpdatedAt = time.Now()
	m.projects[project.ID] = *project
	return nil
}

func (m *MockProjectRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.projects, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockProjectRepository) List(_ context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Project, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.projects[id])
	}
	return out, nil
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]models.User
	CreateErr error
	// Lookups counts GetByIDs calls
	Lookups int
}

// NewMockUserRepository creates an empty repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (m *MockUserRepository) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return database.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MockUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &user, nil
}

func (m *MockUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockUserRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups++
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepository) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Add stores a user directly and returns it
func (m *MockUserRepository) Add(username string) *models.User {
	user := &models.User{Username: username, PasswordHash: "x"}
	_ = m.Create(context.Background(), user)
	return user
}

// MockCommentRepository is an in-memory CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	comments []models.Comment
}

// NewMockCommentRepository creates an empty repository
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *MockCommentRepository) ListByTask(_ context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

// All returns every stored comment
func (m *MockCommentRepository) All() []models.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Comment(nil), m.comments...)
}

// MockHistoryRepository is an in-memory HistoryRepository
type MockHistoryRepository struct {
	mu        sync.Mutex
	entries   []models.HistoryEntry
	AppendErr error
}

// NewMockHistoryRepository creates an empty repository
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Append(_ context.Context, entry *models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MockHistoryRepository) ListByTask(_ context.Context, taskID primitive.ObjectID) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.HistoryEntry{}
	for _, e := range m.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockHistoryRepository) ListRecent(_ context.Context, limit int64) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.HistoryEntry{}
	for i := len(m.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// All returns every stored entry in append order
func (m *MockHistoryRepository) All() []models.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.HistoryEntry(nil), m.entries...)
}

// MockNotificationRepository is an in-memory NotificationRepository
type MockNotificationRepository struct {
	mu            sync.Mutex
	notifications []models.Notification
	CreateErr     error
}

// NewMockNotificationRepository creates an empty repository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *MockNotificationRepository) ListUnread(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockNotificationRepository) MarkAllRead(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].Read = true
		}
	}
	return nil
}

// All returns every stored notification in creation order
func (m *MockNotificationRepository) All() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Notification(nil), m.notifications...)
}
