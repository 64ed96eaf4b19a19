// Package intelligence is the boundary to the external NLU service. It
// turns free text into the engine's typed contracts and nothing more: every
// deterministic decision lives in the engine, every call here has a defined
// fallback, and the whole package is replaced by a stub in engine tests.
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwinther/scoutline/internal/llm"
)

// Service implements the engine's NLU capability on top of an llm.Client.
type Service struct {
	client       llm.Client
	profileNames []string
}

// NewService creates the NLU boundary. profileNames seeds the classifier
// prompt with the valid profile vocabulary.
func NewService(client llm.Client, profileNames []string) *Service {
	return &Service{
		client:       client,
		profileNames: append([]string(nil), profileNames...),
	}
}

// ClassifyIntent decides between new_view and refine. Any service failure or
// off-menu answer deterministically resolves to refine: narrowing an existing
// view is the lower-risk reading of an ambiguous request.
func (s *Service) ClassifyIntent(ctx context.Context, query string, history []Turn) Intent {
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskClassify,
		SystemPrompt: buildClassifierPrompt(s.profileNames),
		Messages:     appendQuery(history, query),
	})
	if err != nil {
		return IntentRefine
	}
	switch Intent(strings.ToLower(strings.TrimSpace(resp.Text))) {
	case IntentNewView:
		return IntentNewView
	case IntentRefine:
		return IntentRefine
	default:
		return IntentRefine
	}
}

// SelectOperation asks the model for exactly one typed operation call given
// the router's assembled instruction. Unparseable output maps to
// ErrNoOperation; transport failures are returned as-is for the router's
// service-failure message.
func (s *Service) SelectOperation(ctx context.Context, instruction string, history []Turn, query string) (Operation, error) {
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskSelect,
		SystemPrompt: selectorSystemPrompt + "\n\n" + instruction,
		Messages:     appendQuery(history, query),
	})
	if err != nil {
		return nil, fmt.Errorf("operation selection: %w", err)
	}

	call, err := llm.ExtractJSON[selectedCall](resp.Text, nil)
	if err != nil {
		return nil, ErrNoOperation
	}
	return decodeOperation(call)
}

// Summarize produces the post-execution confirmation line. Callers substitute
// a templated fallback on error; a failed summary never fails the turn.
func (s *Service) Summarize(ctx context.Context, query string, op Operation) (string, error) {
	argsJSON, _ := json.Marshal(op)
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskSummarize,
		SystemPrompt: summarizerPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Query: %s\nOperation: %s\nArguments: %s", query, op.Name(), argsJSON),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("summary generation: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// AnswerOverTable answers a question over a serialized logbook table. The
// table is read-only context; the prompt instructs the model to refuse
// mutation requests in its own wording.
func (s *Service) AnswerOverTable(ctx context.Context, serializedTable, question string) (string, error) {
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskAnswer,
		SystemPrompt: tableAnswerPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Table:\n%s\nQuestion: %s", serializedTable, question),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("logbook answer: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func appendQuery(history []Turn, query string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, t := range history {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, llm.Message{Role: "user", Content: query})
}
