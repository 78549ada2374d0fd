package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avelis/taskboard/bridge/scaffolding/errs"
	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/infrastructure/web"
)

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var fields tasksrepo.Document
	if err := web.Decode(r, &fields); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	task, err := b.tasksRepository.Create(ctx, fields)
	if err != nil {
		return errs.Newf(errs.InternalOnlyLog, "create task: %s", err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.tasksRepository.List(ctx)
	if err != nil {
		return errs.Newf(errs.InternalOnlyLog, "list tasks: %s", err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task id: %s", err)
	}

	task, err := b.tasksRepository.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Found-or-empty contract: a miss is a 200 with a null result.
			return web.NewJSONResponse(GetTaskResponse{Result: nil})
		}
		return errs.Newf(errs.InternalOnlyLog, "get task: %s", err)
	}

	bridgeTask := MarshalToBridge(task)
	return web.NewJSONResponse(GetTaskResponse{Result: &bridgeTask})
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task id: %s", err)
	}

	var patch tasksrepo.Document
	if err := web.Decode(r, &patch); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	if err := b.tasksRepository.Update(ctx, taskID, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "Task not found")
		}
		return errs.Newf(errs.InternalOnlyLog, "update task: %s", err)
	}

	return web.NewJSONResponse(MessageResponse{Message: "Task updated successfully"})
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	taskID, err := uuid.Parse(web.Param(r, "task_id"))
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid task id: %s", err)
	}

	if err := b.tasksRepository.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "Task not found")
		}
		return errs.Newf(errs.InternalOnlyLog, "delete task: %s", err)
	}

	return web.NewJSONResponse(MessageResponse{Message: "Task deleted successfully"})
}
