package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase   string
	token     string
	sessionID string
	userID    string
	client    = &http.Client{Timeout: 30 * time.Second}
)

// interviewAnswers проходит все 5 шагов интервью по порядку.
var interviewAnswers = []string{
	"My name is Alex",
	"30",
	"male",
	"175",
	"70",
	"I want to lose fat",
	"65",
	"none",
	"no",
	"vegetarian",
	"nothing",
	"3",
	"home cooked",
	"07:00",
	"23:00",
	"9-17",
	"moderate",
	"beginner",
	"4",
	"45",
}

func main() {
	fmt.Println("=== FitCoach E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	// Run smoke tests
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Auth", testDevAuth},
		{"Start Chat", testStartChat},
		{"Run Interview", testRunInterview},
		{"Get Session", testGetSession},
		{"List Messages", testListMessages},
		{"Get User", testGetUser},
		{"Get Plan", testGetPlan},
		{"Download Report (PDF)", testDownloadReportPDF},
		{"Download Report (CSV)", testDownloadReportCSV},
		{"Follow-up Question", testFollowUp},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	req, err := http.NewRequest("GET", apiBase+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

// testDevAuth получает dev-токен. Если токен уже задан через env — пропускаем.
func testDevAuth() error {
	if token != "" {
		return nil
	}

	resp, err := client.Post(apiBase+"/v1/auth/dev", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("empty access_token")
	}

	token = result.AccessToken
	return nil
}

func testStartChat() error {
	req, err := http.NewRequest("POST", apiBase+"/v1/chat/start", nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		SessionID string `json:"session_id"`
		Step      string `json:"step"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.SessionID == "" {
		return fmt.Errorf("empty session_id")
	}
	if result.Step != "personal_details" {
		return fmt.Errorf("unexpected first step %q", result.Step)
	}

	sessionID = result.SessionID
	return nil
}

// testRunInterview отвечает на все вопросы подряд; последний ответ должен
// завершить интервью и вернуть план.
func testRunInterview() error {
	for i, answer := range interviewAnswers {
		result, err := sendMessage(answer)
		if err != nil {
			return fmt.Errorf("answer %d (%q): %w", i+1, answer, err)
		}

		last := i == len(interviewAnswers)-1
		if last {
			if !result.Complete {
				return fmt.Errorf("interview not complete after final answer, message=%q", result.Message)
			}
			if result.Plan == nil {
				return fmt.Errorf("no plan in final response")
			}
			if result.Plan.UserID == "" {
				return fmt.Errorf("empty user_id in plan")
			}
			if result.Plan.DailyTargets.CaloriesKcal < 1200 {
				return fmt.Errorf("calories below safety floor: %d", result.Plan.DailyTargets.CaloriesKcal)
			}
			userID = result.Plan.UserID
		} else if result.Complete {
			return fmt.Errorf("interview completed early at answer %d (%q)", i+1, answer)
		}
	}
	return nil
}

type messageResult struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Step      string `json:"step"`
	Complete  bool   `json:"complete"`
	Message   string `json:"message"`
	Plan      *struct {
		UserID       string `json:"user_id"`
		PlanID       string `json:"plan_id"`
		DailyTargets struct {
			CaloriesKcal int `json:"calories_kcal"`
		} `json:"daily_targets"`
	} `json:"plan"`
}

func sendMessage(content string) (*messageResult, error) {
	payload := map[string]interface{}{
		"session_id": sessionID,
		"content":    content,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/chat/message", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var result messageResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return &result, nil
}

func testGetSession() error {
	req, err := http.NewRequest("GET", apiBase+"/v1/chat/sessions/"+sessionID, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		IsComplete bool           `json:"is_complete"`
		Profile    map[string]any `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if !result.IsComplete {
		return fmt.Errorf("session not marked complete")
	}
	if result.Profile["name"] != "Alex" {
		return fmt.Errorf("unexpected profile name %v", result.Profile["name"])
	}
	return nil
}

func testListMessages() error {
	req, err := http.NewRequest("GET", apiBase+"/v1/chat/sessions/"+sessionID+"/messages", nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Messages) == 0 {
		return fmt.Errorf("no messages in completed session")
	}
	return nil
}

func testGetUser() error {
	req, err := http.NewRequest("GET", apiBase+"/v1/users/"+userID, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Name string `json:"name"`
		Goal string `json:"goal"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Name != "Alex" || result.Goal != "fat_loss" {
		return fmt.Errorf("unexpected user name=%q goal=%q", result.Name, result.Goal)
	}
	return nil
}

func testGetPlan() error {
	req, err := http.NewRequest("GET", apiBase+"/v1/users/"+userID+"/plan", nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		DietPlan    json.RawMessage `json:"diet_plan"`
		WorkoutPlan json.RawMessage `json:"workout_plan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.DietPlan) == 0 || len(result.WorkoutPlan) == 0 {
		return fmt.Errorf("plan payload missing diet or workout part")
	}
	return nil
}

func testDownloadReportPDF() error {
	return downloadReport("pdf", "%PDF")
}

func testDownloadReportCSV() error {
	return downloadReport("csv", "section,day,item")
}

func downloadReport(format, wantPrefix string) error {
	url := fmt.Sprintf("%s/v1/users/%s/plan/report?format=%s", apiBase, userID, format)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	// При REPORTS_MODE=s3 сервер возвращает presigned URL вместо файла
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var result struct {
			DownloadURL string `json:"download_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		if result.DownloadURL == "" {
			return fmt.Errorf("empty download_url")
		}
		return nil
	}

	head := make([]byte, len(wantPrefix))
	if _, err := io.ReadFull(resp.Body, head); err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}
	if string(head) != wantPrefix {
		return fmt.Errorf("unexpected %s header %q", format, string(head))
	}
	return nil
}

// testFollowUp задает вопрос в завершенной сессии — план не пересоздается.
func testFollowUp() error {
	result, err := sendMessage("How many calories should I eat?")
	if err != nil {
		return err
	}
	if !result.Complete {
		return fmt.Errorf("completed session lost complete flag")
	}
	if result.Message == "" {
		return fmt.Errorf("empty follow-up answer")
	}
	return nil
}

// Helper functions

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
