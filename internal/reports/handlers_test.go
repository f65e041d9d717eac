package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/profile"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/fdg312/fitcoach/internal/storage/memory"
	"github.com/google/uuid"
)

func TestPlanReportPDF(t *testing.T) {
	handler, userID := setupReportsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/plan/report?format=pdf", nil)
	req.SetPathValue("id", userID.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response does not look like a PDF")
	}
}

func TestPlanReportCSV(t *testing.T) {
	handler, userID := setupReportsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/plan/report?format=csv", nil)
	req.SetPathValue("id", userID.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q, want text/csv", ct)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected data rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "section" || header[1] != "day" {
		t.Fatalf("unexpected header %v", header)
	}

	sections := make(map[string]int)
	for _, row := range rows[1:] {
		sections[row[0]]++
	}
	if sections["targets"] != 4 {
		t.Fatalf("expected 4 target rows, got %d", sections["targets"])
	}
	// 7 дней * 4 приёма (3 meals per day -> + snack)
	if sections["meals"] != 28 {
		t.Fatalf("expected 28 meal rows, got %d", sections["meals"])
	}
	if sections["workouts"] != 7 {
		t.Fatalf("expected 7 workout rows, got %d", sections["workouts"])
	}
}

func TestPlanReportDefaultsToPDF(t *testing.T) {
	handler, userID := setupReportsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/plan/report", nil)
	req.SetPathValue("id", userID.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", ct)
	}
}

func TestPlanReportInvalidFormat(t *testing.T) {
	handler, userID := setupReportsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/plan/report?format=docx", nil)
	req.SetPathValue("id", userID.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPlanReportUnknownUser(t *testing.T) {
	handler, _ := setupReportsHandler(t)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+id.String()+"/plan/report", nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPlanReportUserWithoutPlan(t *testing.T) {
	handler, _, mem := setupReportsHandlerWithStorage(t)

	user := &storage.User{Name: "Sam", Age: 25}
	if err := mem.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+user.ID.String()+"/plan/report", nil)
	req.SetPathValue("id", user.ID.String())
	w := httptest.NewRecorder()
	handler.HandlePlanReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func setupReportsHandler(t *testing.T) (*Handler, uuid.UUID) {
	t.Helper()
	handler, userID, _ := setupReportsHandlerWithStorage(t)
	return handler, userID
}

func setupReportsHandlerWithStorage(t *testing.T) (*Handler, uuid.UUID, *memory.MemoryStorage) {
	t.Helper()

	mem := memory.New()

	p := profile.New()
	answers := map[string]string{
		profile.FieldName: "Alex", profile.FieldAge: "30", profile.FieldGender: "male",
		profile.FieldHeight: "175", profile.FieldWeight: "70",
		profile.FieldGoal: "fat_loss", profile.FieldTargetWeight: "65",
		profile.FieldMedicalConditions: "", profile.FieldFoodAllergies: "",
		profile.FieldDietType: "veg", profile.FieldDislikedFoods: "",
		profile.FieldMealsPerDay: "3", profile.FieldCookingHabits: "home_cooked",
		profile.FieldWakeTime: "07:00", profile.FieldSleepTime: "23:00",
		profile.FieldWorkHours: "9-17", profile.FieldActivityLevel: "moderate",
		profile.FieldWorkoutExperience: "beginner", profile.FieldWorkoutDaysPerWeek: "4",
		profile.FieldWorkoutDuration: "45",
	}
	for field, value := range answers {
		p.Set(field, value)
	}

	_, mealPlan, workoutPlan, err := plangen.New().Generate(p)
	if err != nil {
		t.Fatalf("generate plan failed: %v", err)
	}
	dietJSON, _ := json.Marshal(mealPlan)
	workoutJSON, _ := json.Marshal(workoutPlan)

	user := &storage.User{
		Name: "Alex", Age: 30, Gender: "male", HeightCm: 175, WeightKg: 70,
		Goal: "fat_loss", DietType: "veg", ActivityLevel: "moderate",
		WorkoutExperience: "beginner", MealsPerDay: 3,
		WorkoutDaysPerWeek: 4, WorkoutDuration: 45,
	}
	if err := mem.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	plan := &storage.Plan{
		UserID:      user.ID,
		DietPlan:    dietJSON,
		WorkoutPlan: workoutJSON,
		Explanation: "Test explanation.",
	}
	if err := mem.CreatePlan(context.Background(), plan); err != nil {
		t.Fatalf("create plan failed: %v", err)
	}

	service := NewService(mem, nil, 900)
	return NewHandler(service), user.ID, mem
}
