package tasksrepobridge

import (
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/sdk/validation"
)

func MarshalToBridge(t tasksrepo.Task) Task {
	return Task{
		TaskID:    t.TaskID.String(),
		Fields:    t.Fields,
		CreatedAt: validation.FormatTimeToString(t.CreatedAt),
		UpdatedAt: validation.FormatTimeToString(t.UpdatedAt),
	}
}

func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	// Always a JSON array on the wire, never null.
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, MarshalToBridge(t))
	}
	return out
}
