package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/fitcoach/internal/ai"
	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/storage/memory"
	"github.com/fdg312/fitcoach/internal/userctx"
	"github.com/google/uuid"
)

func TestStartAsksForName(t *testing.T) {
	handler, mem := setupConversationHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/start", nil)
	w := httptest.NewRecorder()
	handler.HandleStart(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", w.Code, w.Body.String())
	}

	var resp StartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Message != "Great! Let's get started. What's your name?" {
		t.Fatalf("unexpected first question: %q", resp.Message)
	}
	if resp.Step != "personal_details" {
		t.Fatalf("expected personal_details step, got %q", resp.Step)
	}

	session, err := mem.GetSession(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.IsComplete {
		t.Fatal("new session must not be complete")
	}

	rows, err := mem.ListMessages(context.Background(), resp.SessionID, 10)
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Role != "assistant" {
		t.Fatalf("expected one assistant message, got %+v", rows)
	}
}

func TestMessageSavesFieldAndAsksNext(t *testing.T) {
	handler, _ := setupConversationHandler(t)
	sessionID := startSession(t, handler, context.Background())

	resp := sendMessage(t, handler, context.Background(), sessionID, "My name is Alex")
	if resp.Field != "name" || resp.Value != "Alex" {
		t.Fatalf("expected name=Alex, got field=%q value=%q", resp.Field, resp.Value)
	}
	if resp.Message != "Nice to meet you, Alex! How old are you?" {
		t.Fatalf("unexpected next question: %q", resp.Message)
	}
	if resp.Complete {
		t.Fatal("interview must not be complete after one field")
	}
}

func TestMessageValidatorRejection(t *testing.T) {
	handler, mem := setupConversationHandler(t)
	ctx := context.Background()
	sessionID := startSession(t, handler, ctx)

	resp := sendMessage(t, handler, ctx, sessionID, "X")
	if resp.Message != "Please provide your name. If you prefer not to share, you can use a nickname or initials." {
		t.Fatalf("unexpected rejection message: %q", resp.Message)
	}

	session, err := mem.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	collected := make(map[string]any)
	if err := json.Unmarshal(session.Collected, &collected); err != nil {
		t.Fatalf("decode collected failed: %v", err)
	}
	if _, ok := collected["name"]; ok {
		t.Fatal("rejected value must not be saved")
	}
}

func TestFullInterviewProducesPlan(t *testing.T) {
	handler, mem := setupConversationHandler(t)
	ctx := context.Background()
	sessionID := startSession(t, handler, ctx)

	messages := []string{
		"my name is Alex", "30", "male", "175", "70",
		"I want to lose fat", "65",
		"none", "no", "vegetarian", "nothing",
		"3", "home cooked", "07:00", "23:00", "9-17", "moderate",
		"beginner", "4", "45",
	}

	var last *MessageResponse
	for i, msg := range messages {
		last = sendMessage(t, handler, ctx, sessionID, msg)
		if last.Message == "" {
			t.Fatalf("message %d (%q): empty assistant reply", i, msg)
		}
	}

	if !last.Complete {
		t.Fatalf("interview not complete after all messages: %+v", last)
	}
	if last.Plan == nil {
		t.Fatal("expected a plan in the final response")
	}
	if last.Plan.DailyTargets.CaloriesKcal < 1200 {
		t.Fatalf("calories below floor: %d", last.Plan.DailyTargets.CaloriesKcal)
	}

	user, err := mem.GetUser(ctx, last.Plan.UserID)
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Name != "Alex" || user.DietType != "veg" {
		t.Fatalf("unexpected user %+v", user)
	}

	plan, err := mem.GetPlan(ctx, last.Plan.PlanID)
	if err != nil {
		t.Fatalf("plan not persisted: %v", err)
	}
	if plan.Explanation == "" {
		t.Fatal("expected plan explanation")
	}

	session, err := mem.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if !session.IsComplete || session.UserID == nil || session.PlanID == nil {
		t.Fatalf("session not finalized: %+v", session)
	}

	// После завершения интервью сообщения идут в follow-up режим
	followUp := sendMessage(t, handler, ctx, sessionID, "How many calories should I eat?")
	if !followUp.Complete || followUp.Plan != nil {
		t.Fatalf("unexpected follow-up response: %+v", followUp)
	}
	if followUp.Message == "" {
		t.Fatal("expected a follow-up answer")
	}
}

func TestSessionOwnership(t *testing.T) {
	handler, _ := setupConversationHandler(t)

	ctxA := userctx.WithUserID(context.Background(), "userA")
	sessionID := startSession(t, handler, ctxA)

	reqBody, _ := json.Marshal(MessageRequest{SessionID: sessionID, Content: "Alex"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", bytes.NewReader(reqBody))
	req = req.WithContext(userctx.WithUserID(context.Background(), "userB"))
	w := httptest.NewRecorder()
	handler.HandleMessage(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetSessionAndMessages(t *testing.T) {
	handler, _ := setupConversationHandler(t)
	ctx := context.Background()
	sessionID := startSession(t, handler, ctx)
	sendMessage(t, handler, ctx, sessionID, "My name is Alex")

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/"+sessionID.String(), nil)
	req.SetPathValue("id", sessionID.String())
	w := httptest.NewRecorder()
	handler.HandleGetSession(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	var sessionResp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&sessionResp); err != nil {
		t.Fatalf("decode session failed: %v", err)
	}
	if sessionResp.Profile["name"] != "Alex" {
		t.Fatalf("expected name in profile, got %+v", sessionResp.Profile)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/"+sessionID.String()+"/messages", nil)
	listReq.SetPathValue("id", sessionID.String())
	listW := httptest.NewRecorder()
	handler.HandleListMessages(listW, listReq)

	if listW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", listW.Code, listW.Body.String())
	}
	var listResp ListMessagesResponse
	if err := json.NewDecoder(listW.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode messages failed: %v", err)
	}
	// start question + user message + next question
	if len(listResp.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(listResp.Messages))
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	handler, _ := setupConversationHandler(t)

	reqBody, _ := json.Marshal(MessageRequest{SessionID: uuid.New(), Content: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", bytes.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.HandleMessage(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func startSession(t *testing.T, handler *Handler, ctx context.Context) uuid.UUID {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/start", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.HandleStart(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("start failed status=%d body=%s", w.Code, w.Body.String())
	}

	var resp StartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode start response failed: %v", err)
	}
	return resp.SessionID
}

func sendMessage(t *testing.T, handler *Handler, ctx context.Context, sessionID uuid.UUID, content string) *MessageResponse {
	t.Helper()

	reqBody, _ := json.Marshal(MessageRequest{SessionID: sessionID, Content: content})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", bytes.NewReader(reqBody)).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.HandleMessage(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("send message %q failed status=%d body=%s", content, w.Code, w.Body.String())
	}

	var resp MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode message response failed: %v", err)
	}
	return &resp
}

func setupConversationHandler(t *testing.T) (*Handler, *memory.MemoryStorage) {
	t.Helper()

	mem := memory.New()
	service := NewService(mem, ai.NewMockProvider(), plangen.New(), 50)
	return NewHandler(service), mem
}
