package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/gorilla/mux"
)

var taskMessages = messages{common.ErrorNotFound: "Task not found"}

func (s *HTTPServer) createTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	task, err := s.tasks.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		s.writeError(w, r, err, taskMessages)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *HTTPServer) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	list, err := s.tasks.List(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err, taskMessages)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for i := range list {
		out = append(out, toTaskResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	task, err := s.tasks.Update(r.Context(), userID, mux.Vars(r)["id"], req.patch())
	if err != nil {
		s.writeError(w, r, err, taskMessages)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err, taskMessages)
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted")
}

func (s *HTTPServer) exportTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	res, err := s.exports.Export(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	s.logger.Info(r.Context(), "Exported tasks", "user_id", userID, "key", res.Key, "count", res.Count)
	writeJSON(w, http.StatusOK, exportResponse{URL: res.URL, Key: res.Key, Count: res.Count})
}
