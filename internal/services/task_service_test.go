package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

func setupTaskTest(t *testing.T) (*services.TaskService, *sql.DB, int64, int64) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ownerID := testutil.RegisterTestUser(t, db, "owner", "pw")
	otherID := testutil.RegisterTestUser(t, db, "other", "pw")
	return services.NewTaskService(db), db, ownerID, otherID
}

func TestTaskLifecycle(t *testing.T) {
	svc, _, ownerID, _ := setupTaskTest(t)

	task, err := svc.CreateTask(ownerID, "water the plants", false)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.Description != "water the plants" || task.Completed {
		t.Errorf("CreateTask() = %+v", task)
	}

	tasks, err := svc.GetTasks(ownerID)
	if err != nil {
		t.Fatalf("GetTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("GetTasks() = %+v, want the created task", tasks)
	}

	done := true
	updated, err := svc.UpdateTask(ownerID, task.ID, nil, &done)
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if !updated.Completed {
		t.Error("UpdateTask() did not set completed")
	}
	if updated.Description != task.Description {
		t.Errorf("UpdateTask() changed description to %q", updated.Description)
	}

	if err := svc.DeleteTask(ownerID, task.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, err := svc.GetTask(ownerID, task.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetTask() after delete error = %v, want ErrNotFound", err)
	}
}

func TestTaskOwnerIsolation(t *testing.T) {
	svc, _, ownerID, otherID := setupTaskTest(t)

	task, err := svc.CreateTask(ownerID, "private", false)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	t.Run("get", func(t *testing.T) {
		if _, err := svc.GetTask(otherID, task.ID); !errors.Is(err, services.ErrNotFound) {
			t.Errorf("GetTask() as other error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		desc := "stolen"
		if _, err := svc.UpdateTask(otherID, task.ID, &desc, nil); !errors.Is(err, services.ErrNotFound) {
			t.Errorf("UpdateTask() as other error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := svc.DeleteTask(otherID, task.ID); !errors.Is(err, services.ErrNotFound) {
			t.Errorf("DeleteTask() as other error = %v, want ErrNotFound", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		tasks, err := svc.GetTasks(otherID)
		if err != nil {
			t.Fatalf("GetTasks() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("GetTasks() as other = %+v, want empty", tasks)
		}
	})

	// The row itself must be untouched.
	got, err := svc.GetTask(ownerID, task.ID)
	if err != nil {
		t.Fatalf("GetTask() as owner error = %v", err)
	}
	if got.Description != "private" {
		t.Errorf("task description = %q after cross-owner attempts", got.Description)
	}
}

func TestDeleteNonexistentTask(t *testing.T) {
	svc, _, ownerID, _ := setupTaskTest(t)

	if err := svc.DeleteTask(ownerID, 12345); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteTask() missing error = %v, want ErrNotFound", err)
	}
}
