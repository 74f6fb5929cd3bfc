package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

func setupHealthTest(t *testing.T) (*services.HealthService, int64, int64) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ownerID := testutil.RegisterTestUser(t, db, "owner", "pw")
	otherID := testutil.RegisterTestUser(t, db, "other", "pw")
	return services.NewHealthService(db), ownerID, otherID
}

func TestActivityRecords(t *testing.T) {
	svc, ownerID, otherID := setupHealthTest(t)

	cal := 320
	rec, err := svc.CreateActivity(ownerID, "running", 30, &cal, time.Now())
	if err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	if rec.ActivityType != "running" || rec.DurationMinutes != 30 {
		t.Errorf("CreateActivity() = %+v", rec)
	}
	if rec.Calories == nil || *rec.Calories != cal {
		t.Errorf("CreateActivity() calories = %v, want %d", rec.Calories, cal)
	}

	recs, err := svc.GetActivities(ownerID)
	if err != nil {
		t.Fatalf("GetActivities() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("GetActivities() returned %d records, want 1", len(recs))
	}

	if err := svc.DeleteActivity(otherID, rec.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteActivity() as other error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteActivity(ownerID, rec.ID); err != nil {
		t.Fatalf("DeleteActivity() error = %v", err)
	}
	if err := svc.DeleteActivity(ownerID, rec.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteActivity() twice error = %v, want ErrNotFound", err)
	}
}

func TestGlucoseRecords(t *testing.T) {
	svc, ownerID, otherID := setupHealthTest(t)

	rec, err := svc.CreateGlucose(ownerID, 5.4, time.Now())
	if err != nil {
		t.Fatalf("CreateGlucose() error = %v", err)
	}
	if rec.Level != 5.4 {
		t.Errorf("CreateGlucose() level = %v, want 5.4", rec.Level)
	}

	recs, err := svc.GetGlucose(otherID)
	if err != nil {
		t.Fatalf("GetGlucose() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("GetGlucose() as other = %+v, want empty", recs)
	}

	if err := svc.DeleteGlucose(ownerID, rec.ID); err != nil {
		t.Fatalf("DeleteGlucose() error = %v", err)
	}
}

func TestFoodRecords(t *testing.T) {
	svc, ownerID, _ := setupHealthTest(t)

	rec, err := svc.CreateFood(ownerID, "oatmeal", nil, time.Now())
	if err != nil {
		t.Fatalf("CreateFood() error = %v", err)
	}
	if rec.Name != "oatmeal" {
		t.Errorf("CreateFood() name = %q", rec.Name)
	}
	if rec.Calories != nil {
		t.Errorf("CreateFood() calories = %v, want nil", rec.Calories)
	}

	if err := svc.DeleteFood(ownerID, rec.ID+100); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteFood() missing error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteFood(ownerID, rec.ID); err != nil {
		t.Fatalf("DeleteFood() error = %v", err)
	}
}
