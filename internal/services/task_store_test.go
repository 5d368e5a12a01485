package services_test

import (
	"testing"

	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskFilterQuery(t *testing.T) {
	assert.Empty(t, services.TaskFilterQuery(models.TaskFilter{}))

	project := primitive.NewObjectID()
	query := services.TaskFilterQuery(models.TaskFilter{
		SearchText: "a.b(c",
		Status:     models.TaskStatusBlocked,
		Priority:   models.TaskPriorityLow,
		ProjectID:  &project,
	})

	assert.Equal(t, models.TaskStatusBlocked, query["status"])
	assert.Equal(t, models.TaskPriorityLow, query["priority"])
	assert.Equal(t, project, query["projectId"])

	or, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	title := or[0].(bson.M)["title"].(primitive.Regex)
	assert.Equal(t, `a\.b\(c`, title.Pattern)
	assert.Equal(t, "i", title.Options)
}
