package services

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/database"
	"tasktracker/internal/logging"
	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task write operations, used as metric and log labels
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Notification message prefixes shown to the recipient
const (
	assignedMessagePrefix = "Nueva tarea asignada: "
	updatedMessagePrefix  = "Tarea actualizada: "
)

// TaskService runs the task write workflow: each create, update or delete
// persists the task and then appends history entries and notifications as
// separate writes. A failing step aborts the remaining steps; completed
// steps are not rolled back.
type TaskService struct {
	tasks         TaskRepository
	history       HistoryRepository
	notifications NotificationRepository
	resolver      *ReferenceResolver
	metrics       *Metrics
}

// NewTaskService creates a new task service
func NewTaskService(
	tasks TaskRepository,
	history HistoryRepository,
	notifications NotificationRepository,
	resolver *ReferenceResolver,
	metrics *Metrics,
) *TaskService {
	return &TaskService{
		tasks:         tasks,
		history:       history,
		notifications: notifications,
		resolver:      resolver,
		metrics:       metrics,
	}
}

// Create validates input, inserts the task, records a CREATED history entry
// and notifies the assignee if there is one.
func (s *TaskService) Create(ctx context.Context, actor primitive.ObjectID, in models.TaskInput) (*models.TaskResponse, error) {
	title := in.Title.Trimmed()
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    in.Description.String(),
		Status:         models.TaskStatusPending,
		Priority:       models.TaskPriorityMedium,
		ProjectID:      optionalRef(in.ProjectID),
		AssignedTo:     optionalRef(in.AssignedTo),
		DueDate:        in.DueDate.String(),
		EstimatedHours: in.EstimatedHours.Hours(),
		ActualHours:    0,
		CreatedBy:      actor,
	}
	if status := models.TaskStatus(in.Status.String()); status.IsValid() {
		task.Status = status
	}
	if priority := models.TaskPriority(in.Priority.String()); priority.IsValid() {
		task.Priority = priority
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, s.fail(OperationCreate, "insert_task", task.ID, err)
	}
	s.metrics.RecordTaskCreated()

	if err := s.appendHistory(ctx, OperationCreate, task.ID, actor, models.HistoryActionCreated, "", task.Title); err != nil {
		return nil, err
	}

	if task.AssignedTo != nil {
		if err := s.notify(ctx, OperationCreate, task, models.NotificationTaskAssigned, assignedMessagePrefix+task.Title); err != nil {
			return nil, err
		}
	}

	return s.resolve(ctx, OperationCreate, task)
}

// Update applies the fields present in input. Status and title changes are
// recorded in history, and the assignee (if any after the update) is
// notified whether or not the assignment changed.
func (s *TaskService) Update(ctx context.Context, actor primitive.ObjectID, id string, in models.TaskInput) (*models.TaskResponse, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title.Provided() && in.Title.Trimmed() == "" {
		return nil, ErrTitleRequired
	}

	oldStatus := task.Status
	oldTitle := task.Title

	applyTaskUpdate(task, in)

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, s.fail(OperationUpdate, "update_task", task.ID, err)
	}
	s.metrics.RecordTaskUpdated()

	if task.Status != oldStatus {
		if err := s.appendHistory(ctx, OperationUpdate, task.ID, actor, models.HistoryActionStatusChanged, string(oldStatus), string(task.Status)); err != nil {
			return nil, err
		}
	}

	if task.Title != oldTitle {
		if err := s.appendHistory(ctx, OperationUpdate, task.ID, actor, models.HistoryActionTitleChanged, oldTitle, task.Title); err != nil {
			return nil, err
		}
	}

	if task.AssignedTo != nil {
		if err := s.notify(ctx, OperationUpdate, task, models.NotificationTaskUpdated, updatedMessagePrefix+task.Title); err != nil {
			return nil, err
		}
	}

	return s.resolve(ctx, OperationUpdate, task)
}

// Delete records a DELETED history entry and then removes the task.
// Comments and earlier history entries are kept.
func (s *TaskService) Delete(ctx context.Context, actor primitive.ObjectID, id string) error {
	task, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appendHistory(ctx, OperationDelete, task.ID, actor, models.HistoryActionDeleted, task.Title, ""); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrTaskNotFound
		}
		return s.fail(OperationDelete, "delete_task", task.ID, err)
	}
	s.metrics.RecordTaskDeleted()
	return nil
}

// Get returns a single task with references resolved
func (s *TaskService) Get(ctx context.Context, id string) (*models.TaskResponse, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.Task(ctx, task)
}

// List returns the tasks matching filter, newest first
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.TaskResponse, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.resolver.Tasks(ctx, tasks)
}

func (s *TaskService) load(ctx context.Context, id string) (*models.Task, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	task, err := s.tasks.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) appendHistory(ctx context.Context, operation string, taskID, actor primitive.ObjectID, action models.HistoryAction, oldValue, newValue string) error {
	entry := &models.HistoryEntry{
		TaskID:   taskID,
		UserID:   actor,
		Action:   action,
		OldValue: oldValue,
		NewValue: newValue,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return s.fail(operation, "append_history", taskID, err)
	}
	s.metrics.RecordHistory(action)
	return nil
}

func (s *TaskService) notify(ctx context.Context, operation string, task *models.Task, kind models.NotificationType, message string) error {
	notification := &models.Notification{
		UserID:  *task.AssignedTo,
		Message: message,
		Type:    kind,
		Read:    false,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return s.fail(operation, "create_notification", task.ID, err)
	}
	s.metrics.RecordNotification(kind)
	return nil
}

func (s *TaskService) resolve(ctx context.Context, operation string, task *models.Task) (*models.TaskResponse, error) {
	resp, err := s.resolver.Task(ctx, task)
	if err != nil {
		return nil, s.fail(operation, "resolve_references", task.ID, err)
	}
	return resp, nil
}

func (s *TaskService) fail(operation, step string, taskID primitive.ObjectID, err error) error {
	logging.WithTask(operation, taskID.Hex()).Error("task write step failed", "step", step, "error", err)
	s.metrics.RecordWorkflowFailure(operation, step)
	return fmt.Errorf("%s task: %s: %w", operation, step, err)
}

// applyTaskUpdate copies the present fields of in onto task. Invalid enum
// values leave the field unchanged; a null or malformed reference clears it.
func applyTaskUpdate(task *models.Task, in models.TaskInput) {
	if in.Title.Provided() {
		task.Title = in.Title.Trimmed()
	}
	if in.Description.Provided() {
		task.Description = in.Description.String()
	}
	if status := models.TaskStatus(in.Status.String()); in.Status.Provided() && status.IsValid() {
		task.Status = status
	}
	if priority := models.TaskPriority(in.Priority.String()); in.Priority.Provided() && priority.IsValid() {
		task.Priority = priority
	}
	if in.ProjectID.Set {
		task.ProjectID = optionalRef(in.ProjectID)
	}
	if in.AssignedTo.Set {
		task.AssignedTo = optionalRef(in.AssignedTo)
	}
	if in.DueDate.Set {
		task.DueDate = in.DueDate.String()
	}
	if in.EstimatedHours.Set {
		task.EstimatedHours = in.EstimatedHours.Hours()
	}
}

// optionalRef returns the referenced id, or nil when the field is absent,
// null or not a well-formed identifier.
func optionalRef(f models.Field) *primitive.ObjectID {
	oid, ok := models.ParseObjectID(f.String())
	if !ok {
		return nil
	}
	return &oid
}
