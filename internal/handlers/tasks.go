package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmasters/internal/models"
	"taskmasters/internal/rabbitmq"
	"taskmasters/internal/repositories"
	"taskmasters/internal/telemetry"
)

// TaskHandler manages personal tasks and task sharing.
type TaskHandler struct {
	taskRepo   repositories.TaskRepository
	friendRepo repositories.FriendRepository
	publisher  rabbitmq.Publisher
	audit      *telemetry.AuditEmitter
}

// NewTaskHandler builds a TaskHandler.
func NewTaskHandler(taskRepo repositories.TaskRepository, friendRepo repositories.FriendRepository, publisher rabbitmq.Publisher, audit *telemetry.AuditEmitter) *TaskHandler {
	return &TaskHandler{
		taskRepo:   taskRepo,
		friendRepo: friendRepo,
		publisher:  publisher,
		audit:      audit,
	}
}

type taskRequest struct {
	Name      string `json:"name" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Priority  string `json:"priority"`
	Workload  string `json:"workload"`
	Completed bool   `json:"completed"`
}

// ListTasks returns the user's own tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListSharedTasks returns tasks friends shared with the user.
func (h *TaskHandler) ListSharedTasks(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListSharedTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shared tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask stores a new task for the user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task name is empty"})
		return
	}

	task, err := h.taskRepo.CreateTask(c.Request.Context(), models.Task{
		OwnerID:   userID,
		Name:      req.Name,
		Date:      req.Date,
		Time:      req.Time,
		Priority:  req.Priority,
		Workload:  req.Workload,
		Completed: req.Completed,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventTaskCreated, task)
	h.audit.Emit(c.Request.Context(), "info", "task created", requestIDFromContext(c), userID)

	c.JSON(http.StatusCreated, task)
}

// UpdateTask rewrites an owned task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskRepo.UpdateTask(c.Request.Context(), models.Task{
		ID:        taskID,
		OwnerID:   userID,
		Name:      req.Name,
		Date:      req.Date,
		Time:      req.Time,
		Priority:  req.Priority,
		Workload:  req.Workload,
		Completed: req.Completed,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrTaskNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not update task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes an owned task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.taskRepo.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrTaskNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// ShareTask makes an owned task visible to a confirmed friend.
func (h *TaskHandler) ShareTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req struct {
		FriendID int `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskRepo.GetTask(c.Request.Context(), taskID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrTaskNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "task not found"})
		return
	}
	if task.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the task owner"})
		return
	}

	friends, err := h.friendRepo.AreFriends(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate friendship"})
		return
	}
	if !friends {
		c.JSON(http.StatusForbidden, gin.H{"error": "users are not friends"})
		return
	}

	if err := h.taskRepo.ShareTask(c.Request.Context(), taskID, req.FriendID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not share task"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventTaskShared, gin.H{
		"task_id":   taskID,
		"owner_id":  userID,
		"friend_id": req.FriendID,
	})
	h.audit.Emit(c.Request.Context(), "info", "task shared", requestIDFromContext(c), userID)

	c.JSON(http.StatusOK, gin.H{})
}
