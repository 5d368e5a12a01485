package services_test

import (
	"context"
	"testing"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := services.NewProjectService(testutil.NewMockProjectRepository())

	_, err := svc.Create(ctx, models.ProjectInput{Name: models.NewField("  ")})
	assert.ErrorIs(t, err, services.ErrNameRequired)

	created, err := svc.Create(ctx, models.ProjectInput{Name: models.NewField("Alpha"), Description: models.NewField("first")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.ProjectInput{Name: models.NewField("Beta")})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	updated, err := svc.Update(ctx, created.ID.Hex(), models.ProjectInput{Description: models.NewField("changed")})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", updated.Name)
	assert.Equal(t, "changed", updated.Description)

	_, err = svc.Update(ctx, created.ID.Hex(), models.ProjectInput{Name: models.NewField("")})
	assert.ErrorIs(t, err, services.ErrNameRequired)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID.Hex()), services.ErrProjectNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "bad"), services.ErrProjectNotFound)
	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), models.ProjectInput{})
	assert.ErrorIs(t, err, services.ErrProjectNotFound)
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	comments := testutil.NewMockCommentRepository()
	resolver := services.NewReferenceResolver(testutil.NewMockProjectRepository(), users, time.Minute)
	svc := services.NewCommentService(comments, resolver)
	author := users.Add("ann")
	taskID := primitive.NewObjectID().Hex()

	_, err := svc.Create(ctx, author.ID, models.CommentInput{TaskID: "", CommentText: models.NewField("x")})
	assert.ErrorIs(t, err, services.ErrTaskIDRequired)
	_, err = svc.Create(ctx, author.ID, models.CommentInput{TaskID: taskID, CommentText: models.NewField("   ")})
	assert.ErrorIs(t, err, services.ErrCommentEmpty)

	created, err := svc.Create(ctx, author.ID, models.CommentInput{TaskID: taskID, CommentText: models.NewField(" looks good ")})
	require.NoError(t, err)
	assert.Equal(t, "looks good", created.CommentText)
	require.NotNil(t, created.Username)
	assert.Equal(t, "ann", *created.Username)

	list, err := svc.ListByTask(ctx, taskID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByTask(ctx, "garbage")
	assert.ErrorIs(t, err, services.ErrTaskIDRequired)
}

func TestHistoryServiceRecentLimit(t *testing.T) {
	ctx := context.Background()
	history := testutil.NewMockHistoryRepository()
	resolver := services.NewReferenceResolver(testutil.NewMockProjectRepository(), testutil.NewMockUserRepository(), time.Minute)
	svc := services.NewHistoryService(history, resolver)
	taskID := primitive.NewObjectID()

	for i := 0; i < services.RecentHistoryLimit+5; i++ {
		require.NoError(t, history.Append(ctx, &models.HistoryEntry{TaskID: taskID, Action: models.HistoryActionTitleChanged, NewValue: string(rune('a' + i%26))}))
	}

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, services.RecentHistoryLimit)
	all := history.All()
	assert.Equal(t, all[len(all)-1].ID.Hex(), recent[0].ID)

	byTask, err := svc.ListByTask(ctx, taskID.Hex())
	require.NoError(t, err)
	assert.Len(t, byTask, services.RecentHistoryLimit+5)
	assert.Nil(t, byTask[0].Username)
}

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewMockNotificationRepository()
	svc := services.NewNotificationService(repo)
	me, other := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: me, Message: "first", Type: models.NotificationTaskAssigned}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: me, Message: "second", Type: models.NotificationTaskUpdated}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: other, Message: "theirs", Type: models.NotificationTaskUpdated}))

	unread, err := svc.Unread(ctx, me)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, "second", unread[0].Message)

	require.NoError(t, svc.MarkAllRead(ctx, me))
	unread, err = svc.Unread(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, unread)

	unread, err = svc.Unread(ctx, other)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}
