package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/titanhub-backend/internal/clients/openai"
	"github.com/yungbote/titanhub-backend/internal/pkg/ctxutil"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

const assistantFallback = "Operational error in Titan AI. Please retry in a moment."
const assistantOffline = "Titan AI is not configured on this deployment, so I can't reason about the data right now."

// AssistantService answers free-text questions about the current record set
// by prompting the model with a compact snapshot summary. Failures never
// escape as errors; the chat surface always gets a friendly sentence.
type AssistantService struct {
	log   *logger.Logger
	model openai.Client
	sync  *SyncService
}

func NewAssistantService(log *logger.Logger, model openai.Client, sync *SyncService) *AssistantService {
	return &AssistantService{
		log:   log.With("service", "AssistantService"),
		model: model,
		sync:  sync,
	}
}

func (s *AssistantService) Chat(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Ask me something about members, trainers, classes or attendance."
	}
	if s.model == nil {
		return assistantOffline
	}

	answer, err := s.model.GenerateText(ctxutil.Default(ctx), s.systemInstruction(), message)
	if err != nil {
		s.log.Error("Assistant generation failed", "error", err)
		return assistantFallback
	}
	if strings.TrimSpace(answer) == "" {
		return "I'm sorry, I couldn't interpret the data for that request."
	}
	return answer
}

// systemInstruction grounds the model in the live dashboard numbers so its
// answers stay data-centric rather than generic.
func (s *AssistantService) systemInstruction() string {
	snap := s.sync.Current()

	trainers := make([]string, 0, len(snap.TrainerOrder))
	trainers = append(trainers, snap.TrainerOrder...)
	classes := make([]string, 0, len(snap.Distributions.ByClass))
	for _, b := range snap.Distributions.ByClass {
		classes = append(classes, b.Label)
	}

	var b strings.Builder
	b.WriteString("You are Titan, the AI intelligence of the Titan Hub gym dashboard.\n")
	b.WriteString("You have access to the latest live dashboard data.\n\n")
	b.WriteString("Current snapshot:\n")
	fmt.Fprintf(&b, "- Records: %d\n", snap.Metrics.TotalRecords)
	fmt.Fprintf(&b, "- Unique members: %d\n", snap.Metrics.UniqueMembers)
	fmt.Fprintf(&b, "- Trainers: %s\n", strings.Join(trainers, ", "))
	fmt.Fprintf(&b, "- Classes: %s\n", strings.Join(classes, ", "))
	fmt.Fprintf(&b, "- Avg workout: %.1f mins\n\n", snap.Metrics.AvgStayMinutes)
	b.WriteString("Instructions:\n")
	b.WriteString("- Answer specific queries about member performance, trainer workloads, and attendance trends.\n")
	b.WriteString("- Provide actionable insights grounded in the snapshot numbers.\n")
	b.WriteString("- Be professional, data-centric, and concise.")
	return b.String()
}
