package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/titanhub-backend/internal/demo"
	"github.com/yungbote/titanhub-backend/internal/ingestion"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

type fakeModel struct {
	gotSystem string
	gotUser   string
	answer    string
	err       error
}

func (f *fakeModel) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.gotSystem = system
	f.gotUser = user
	return f.answer, f.err
}

func newTestAssistant(t *testing.T, model *fakeModel) *AssistantService {
	t.Helper()
	sync := NewSyncService(logger.NewNop(), nil, ingestion.NewHeaderMap(), nil, 5)
	sync.LoadDemo(demo.Generate(20, 1))
	if model == nil {
		return NewAssistantService(logger.NewNop(), nil, sync)
	}
	return NewAssistantService(logger.NewNop(), model, sync)
}

func TestChat_GroundsPromptInSnapshot(t *testing.T) {
	model := &fakeModel{answer: "Attendance is healthy."}
	a := newTestAssistant(t, model)

	got := a.Chat(context.Background(), "How is attendance?")
	if got != "Attendance is healthy." {
		t.Fatalf("answer: %q", got)
	}
	if model.gotUser != "How is attendance?" {
		t.Fatalf("user prompt: %q", model.gotUser)
	}
	if !strings.Contains(model.gotSystem, "Records: 20") {
		t.Fatalf("system prompt missing record count:\n%s", model.gotSystem)
	}
	if !strings.Contains(model.gotSystem, "Unique members:") {
		t.Fatalf("system prompt missing members line:\n%s", model.gotSystem)
	}
}

func TestChat_EmptyMessagePrompts(t *testing.T) {
	a := newTestAssistant(t, &fakeModel{answer: "unused"})
	got := a.Chat(context.Background(), "   ")
	if !strings.Contains(got, "Ask me") {
		t.Fatalf("got %q", got)
	}
}

func TestChat_NoModelConfigured(t *testing.T) {
	a := newTestAssistant(t, nil)
	if got := a.Chat(context.Background(), "hello"); got != assistantOffline {
		t.Fatalf("got %q", got)
	}
}

func TestChat_ModelErrorFallsBack(t *testing.T) {
	a := newTestAssistant(t, &fakeModel{err: fmt.Errorf("boom")})
	if got := a.Chat(context.Background(), "hello"); got != assistantFallback {
		t.Fatalf("got %q", got)
	}
}

func TestChat_BlankAnswerFallsBack(t *testing.T) {
	a := newTestAssistant(t, &fakeModel{answer: "  "})
	got := a.Chat(context.Background(), "hello")
	if !strings.Contains(got, "couldn't interpret") {
		t.Fatalf("got %q", got)
	}
}
