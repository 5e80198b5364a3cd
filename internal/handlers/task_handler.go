package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/numjklpp1/parts-management-pro/internal/models"
	"github.com/numjklpp1/parts-management-pro/internal/services"
	"github.com/numjklpp1/parts-management-pro/pkg/utils"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

func taskIndex(r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"tasks": h.Service.Tasks()})
}

func (h *TaskHandler) AddTasks(w http.ResponseWriter, r *http.Request) {
	var req models.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.Service.AddPair(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := taskIndex(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid task index")
		return
	}

	tasks, err := h.Service.Delete(r.Context(), idx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := taskIndex(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid task index")
		return
	}

	var req models.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Complete(r.Context(), idx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *TaskHandler) PrioritizeTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := taskIndex(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid task index")
		return
	}

	tasks, err := h.Service.MoveToFront(r.Context(), idx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}
