package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduPulse/domain"
	"eduPulse/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
}

// HistoryStore keeps the recent conversation tail per user. Reads degrade
// to an empty history on failure.
type HistoryStore interface {
	Recent(ctx context.Context, userID uint, limit int) ([]domain.Message, error)
	Append(ctx context.Context, userID uint, msg domain.Message) error
	Clear(ctx context.Context, userID uint) error
}

// InteractionRecorder is the append-only interaction log sink.
type InteractionRecorder interface {
	Record(ctx context.Context, it domain.Interaction) error
}

// WeightProvider reads the current weight map for a named model.
type WeightProvider interface {
	Weights(ctx context.Context, model string) (map[string]float64, error)
}

// ---- Usecase / Service ----

type ChatService struct {
	classifier   *IntentClassifier
	extractor    *EntityExtractor
	profileRepo  ProfileRepository
	history      HistoryStore
	recorder     InteractionRecorder
	weights      WeightProvider
	historyLimit int
}

func NewChatService(
	classifier *IntentClassifier,
	extractor *EntityExtractor,
	profileRepo ProfileRepository,
	history HistoryStore,
	recorder InteractionRecorder,
	weights WeightProvider,
	historyLimit int,
) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &ChatService{
		classifier:   classifier,
		extractor:    extractor,
		profileRepo:  profileRepo,
		history:      history,
		recorder:     recorder,
		weights:      weights,
		historyLimit: historyLimit,
	}
}

// AnalyzeContext composes classification, extraction and the conversation
// signals into the per-request context snapshot. Missing profile or
// weight data falls back to safe defaults.
func (s *ChatService) AnalyzeContext(
	ctx context.Context,
	userID uint,
	message string,
	history []domain.Message,
) domain.Context {
	profile := domain.UserProfile{UserID: userID}
	if s.profileRepo != nil {
		if p, err := s.profileRepo.GetProfile(ctx, userID); err == nil {
			profile = p
		} else {
			logger.Warn("profile lookup failed, using defaults", "user_id", userID, "error", err)
		}
	}

	var bias map[string]float64
	if s.weights != nil {
		if w, err := s.weights.Weights(ctx, domain.ModelIntentBias); err == nil {
			bias = w
		}
	}

	entities := domain.NewEntitySet()
	if s.extractor != nil {
		entities = s.extractor.Extract(ctx, message)
	}

	now := time.Now()

	return domain.Context{
		Profile:           profile,
		ConversationState: TrackConversationState(history, now),
		Intent:            s.classifier.ClassifyWeighted(message, bias),
		Entities:          entities,
		Urgency:           DetectUrgency(message),
		TopicContinuity:   CheckTopicContinuity(message, history),
	}
}

// HandleMessage runs the full exchange: load history, analyze, build the
// templated response, append both sides to the history and log the
// interaction. It returns the response and the interaction id used for
// later feedback.
func (s *ChatService) HandleMessage(
	ctx context.Context,
	userID uint,
	message string,
) (domain.ChatResponse, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatResponse{}, "", fmt.Errorf("context error: %w", err)
	}
	if strings.TrimSpace(message) == "" {
		return domain.ChatResponse{}, "", fmt.Errorf("message is required")
	}

	var history []domain.Message
	if s.history != nil {
		h, err := s.history.Recent(ctx, userID, s.historyLimit)
		if err != nil {
			logger.Warn("history lookup failed, treating conversation as new", "user_id", userID, "error", err)
		} else {
			history = h
		}
	}

	analyzed := s.AnalyzeContext(ctx, userID, message, history)
	resp := BuildResponse(analyzed)

	tid := TraceIDFromContext(ctx)
	logger.Debug("chat_message",
		"trace_id", tid,
		"user_id", userID,
		"intent", analyzed.Intent.Intent,
		"score", analyzed.Intent.Score,
		"state", analyzed.ConversationState,
		"urgency", analyzed.Urgency,
		"continuity", analyzed.TopicContinuity,
	)

	MessagesAnalyzedTotal.
		WithLabelValues(analyzed.Intent.Intent, analyzed.ConversationState, analyzed.Urgency).
		Inc()

	now := time.Now()

	if s.history != nil {
		userMsg := domain.Message{Text: message, SenderID: userID, Timestamp: now}
		botMsg := domain.Message{Text: resp.Text, SenderID: domain.AssistantSenderID, Timestamp: now}
		if err := s.history.Append(ctx, userID, userMsg); err != nil {
			logger.Warn("failed to append user message to history", "user_id", userID, "error", err)
		} else if err := s.history.Append(ctx, userID, botMsg); err != nil {
			logger.Warn("failed to append assistant message to history", "user_id", userID, "error", err)
		}
	}

	interactionID := uuid.NewString()
	if s.recorder != nil {
		it := domain.Interaction{
			ID:           interactionID,
			UserID:       userID,
			Message:      message,
			Intent:       analyzed.Intent.Intent,
			ResponseType: resp.Type,
			Confidence:   resp.Confidence,
			Context: datatypes.JSONMap{
				"conversation_state": analyzed.ConversationState,
				"urgency":            analyzed.Urgency,
				"topic_continuity":   analyzed.TopicContinuity,
				"matched_patterns":   analyzed.Intent.Patterns,
				"entity_counts": map[string]any{
					"courses": len(analyzed.Entities.Courses),
					"dates":   len(analyzed.Entities.Dates),
					"numbers": len(analyzed.Entities.Numbers),
					"actions": len(analyzed.Entities.Actions),
				},
			},
			CreatedAt: now,
		}
		if err := s.recorder.Record(ctx, it); err != nil {
			logger.Warn("failed to record interaction", "user_id", userID, "error", err)
		}
	}

	return resp, interactionID, nil
}

// ClearHistory drops the stored conversation tail for a user, so their
// next message is analyzed as a fresh conversation.
func (s *ChatService) ClearHistory(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if s.history == nil {
		return nil
	}
	if err := s.history.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear conversation history: %w", err)
	}
	logger.Info("conversation_history_cleared", "user_id", userID)
	return nil
}
