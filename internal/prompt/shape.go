package prompt

import (
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/generation"
)

// StudyPlanShape is the declared output shape for study plans:
// {title, overview, tasks: [{id, task, duration, status}]}.
func StudyPlanShape() *generation.Schema {
	statuses := make([]string, len(domain.TaskStatuses))
	for i, s := range domain.TaskStatuses {
		statuses[i] = string(s)
	}

	task := &generation.Schema{
		Type: generation.TypeObject,
		Properties: map[string]*generation.Schema{
			"id":       {Type: generation.TypeString},
			"task":     {Type: generation.TypeString},
			"duration": {Type: generation.TypeString},
			"status":   {Type: generation.TypeString, Enum: statuses},
		},
		Order:    []string{"id", "task", "duration", "status"},
		Required: []string{"task"},
	}

	return &generation.Schema{
		Type: generation.TypeObject,
		Properties: map[string]*generation.Schema{
			"title":    {Type: generation.TypeString},
			"overview": {Type: generation.TypeString},
			"tasks":    {Type: generation.TypeArray, Items: task},
		},
		Order:    []string{"title", "overview", "tasks"},
		Required: []string{"title", "overview", "tasks"},
	}
}
