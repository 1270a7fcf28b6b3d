package main

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rhyrak/exam-schedule/internal/csvio"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

func (s *server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) handleListSchedules(ctx *gin.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{"scheduleIds": ids})
}

func (s *server) handleGetStatus(ctx *gin.Context) {
	s.mu.Lock()
	j, ok := s.jobs[ctx.Param("id")]
	s.mu.Unlock()
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}

	resp := gin.H{"id": j.ID, "status": j.Status}
	if j.Err != "" {
		resp["error"] = j.Err
	}
	if j.Status == model.StatusOptimal || j.Status == model.StatusFeasible {
		resp["adjacentDayConflicts"] = j.Conflicts
	}
	ctx.JSON(http.StatusOK, resp)
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	id := ctx.Param("id")
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	if j.Status == StatusPending {
		ctx.JSON(http.StatusAccepted, gin.H{"id": id, "status": j.Status})
		return
	}
	if j.Status != model.StatusOptimal && j.Status != model.StatusFeasible {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"id": id, "status": j.Status, "error": j.Err})
		return
	}

	content, err := os.ReadFile(filepath.Join(s.jobDir(id), "schedule.csv"))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id, "status": j.Status, "data": string(content)})
}

// handleCreateSchedule accepts the input tables as one multipart upload and
// starts an asynchronous solve. The priority and machine_days parts are
// optional.
func (s *server) handleCreateSchedule(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := uuid.NewString()
	dir := s.jobDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	save := func(field string, required bool) (string, bool) {
		files := form.File[field]
		if len(files) == 0 {
			if required {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing table: " + field})
			}
			return "", !required
		}
		path := filepath.Join(dir, field+".csv")
		if err := s.saveUploaded(ctx, files[0], path); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return "", false
		}
		return path, true
	}

	var paths csvio.Paths
	var ok bool
	if paths.Courses, ok = save("courses", true); !ok {
		return
	}
	if paths.Students, ok = save("students", true); !ok {
		return
	}
	if paths.Cohorts, ok = save("cohorts", true); !ok {
		return
	}
	if paths.Days, ok = save("days", true); !ok {
		return
	}
	if paths.Shifts, ok = save("shifts", true); !ok {
		return
	}
	if paths.Rooms, ok = save("rooms", true); !ok {
		return
	}
	if paths.Priority, ok = save("priority", false); !ok {
		return
	}
	if paths.MachineDays, ok = save("machine_days", false); !ok {
		return
	}

	s.mu.Lock()
	s.jobs[id] = &job{ID: id, Status: StatusPending, Created: time.Now()}
	s.mu.Unlock()

	go s.runJob(id, paths)

	ctx.JSON(http.StatusAccepted, gin.H{"id": id})
}

func (s *server) saveUploaded(ctx *gin.Context, file *multipart.FileHeader, path string) error {
	return ctx.SaveUploadedFile(file, path)
}
