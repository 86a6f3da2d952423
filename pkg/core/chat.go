package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/lunahealth/cyclecare-go/pkg/kvstore"
)

// chatKey is the key-value store key holding the serialized transcript.
const chatKey = "chat_transcript"

// ChatSession owns the ordered transcript of the current conversation.
//
// Messages are strictly append-ordered by creation, oldest first. The full
// transcript is rewritten to storage after every append; transcripts are
// small per session, so the rewrite is acceptable. The session is the sole
// writer of the transcript key.
type ChatSession struct {
	// store is the backing key-value store.
	store kvstore.Store

	// node generates unique message IDs.
	node *snowflake.Node

	// messages holds the transcript, oldest first.
	messages []ChatMessage

	// mu protects concurrent access to the transcript.
	mu sync.RWMutex
}

// NewChatSession creates a ChatSession backed by the given key-value store.
//
// Malformed or missing stored data yields an empty transcript, never an
// error. Timestamps are re-hydrated from their serialized ISO-8601 form.
func NewChatSession(store kvstore.Store, node *snowflake.Node) *ChatSession {
	s := &ChatSession{
		store:    store,
		node:     node,
		messages: []ChatMessage{},
	}

	data, err := store.Get(context.Background(), chatKey)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			log.Printf("cyclecare: transcript load failed, starting empty: %v", err)
		}
		return s
	}

	var loaded []ChatMessage
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("cyclecare: transcript parse failed, starting empty: %v", err)
		return s
	}
	s.messages = loaded
	return s
}

// List returns the transcript, oldest first. Reading never mutates.
func (s *ChatSession) List() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// AppendUserMessage appends a user message with a fresh ID and the current
// timestamp, persists the transcript, and returns the message.
// analysis optionally embeds a shared food analysis in the turn.
func (s *ChatSession) AppendUserMessage(text string, analysis *FoodAnalysisItem) ChatMessage {
	return s.append(RoleUser, text, analysis)
}

// AppendAssistantMessage appends an assistant message with a fresh ID and the
// current timestamp, persists the transcript, and returns the message.
func (s *ChatSession) AppendAssistantMessage(text string, analysis *FoodAnalysisItem) ChatMessage {
	return s.append(RoleAssistant, text, analysis)
}

// SeedGreeting appends a single assistant greeting when the transcript is
// empty and a profile name is known. Idempotent: a non-empty transcript or a
// missing name makes it a no-op.
func (s *ChatSession) SeedGreeting(profileName string) {
	if profileName == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) > 0 {
		return
	}

	greeting := fmt.Sprintf(
		"Hi %s! I'm your PCOS nutrition companion. Ask me anything about food, symptoms, or habits — or share a food photo analysis and we can talk it through.",
		profileName,
	)
	s.appendLocked(RoleAssistant, greeting, nil)
}

// ShouldOfferExtendedQuestionnaire reports whether the UI should offer the
// extended questionnaire: true iff the profile's extended flag is unset and
// at least one assistant message exists.
func (s *ChatSession) ShouldOfferExtendedQuestionnaire(completedExtendedQuiz bool) bool {
	if completedExtendedQuiz {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, msg := range s.messages {
		if msg.Role == RoleAssistant {
			return true
		}
	}
	return false
}

// Reset empties the transcript and removes the persisted record.
// Used on logout.
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = []ChatMessage{}
	if err := s.store.Delete(context.Background(), chatKey); err != nil {
		log.Printf("cyclecare: transcript delete failed: %v", err)
	}
}

func (s *ChatSession) append(role, text string, analysis *FoodAnalysisItem) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(role, text, analysis)
}

// appendLocked constructs, appends, and persists one message.
// Callers must hold mu.
func (s *ChatSession) appendLocked(role, text string, analysis *FoodAnalysisItem) ChatMessage {
	msg := ChatMessage{
		ID:           s.node.Generate().Int64(),
		Role:         role,
		Content:      text,
		Timestamp:    time.Now(),
		FoodAnalysis: analysis,
	}
	s.messages = append(s.messages, msg)
	s.persistLocked()
	return msg
}

// persistLocked rewrites the full transcript under the transcript key.
// Callers must hold mu.
func (s *ChatSession) persistLocked() {
	data, err := json.Marshal(s.messages)
	if err != nil {
		log.Printf("cyclecare: transcript marshal failed: %v", err)
		return
	}
	if err := s.store.Set(context.Background(), chatKey, data); err != nil {
		log.Printf("cyclecare: transcript write failed: %v", err)
	}
}
