package core

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/lunahealth/cyclecare-go/pkg/analysis"
	"github.com/lunahealth/cyclecare-go/pkg/assistant"
	"github.com/lunahealth/cyclecare-go/pkg/kvstore"
	memoryStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/memory"
	mysqlStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/mysql"
	postgresStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/postgres"
	sqliteStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/sqlite"
	"github.com/lunahealth/cyclecare-go/pkg/llm"
	openaiLLM "github.com/lunahealth/cyclecare-go/pkg/llm/openai"
)

// Client is the main CycleCare client for one user session.
//
// It owns the profile store, history log, and chat session, and drives the
// AI analysis and chat clients conditioned on the stored profile. All
// mutation of persisted state goes through the client's stores; no other
// component writes their keys.
//
// Each AI capability carries an in-flight guard: a second concurrent call
// for the same logical action is rejected with ErrRequestInFlight instead of
// relying on the caller to serialize.
//
// Example usage:
//
//	config, _ := core.LoadConfigFromEnv()
//	client, _ := core.NewClient(config)
//	defer client.Close()
//
//	client.UpdateProfile(core.ProfileUpdate{Name: core.String("Dana")})
//	item, err := client.AnalyzeFood(ctx, imageDataURL)
type Client struct {
	// config contains the client configuration.
	config *Config

	// store is the persistent key-value store.
	store kvstore.Store

	// profile owns the Profile entity.
	profile *ProfileStore

	// history owns the food-analysis history log.
	history *HistoryLog

	// chat owns the conversation transcript.
	chat *ChatSession

	// analyzer is the AI analysis client.
	analyzer *analysis.Client

	// assistant is the AI chat client.
	assistant *assistant.Client

	// node generates unique IDs for analysis items and messages.
	node *snowflake.Node

	// analysisInFlight guards the analyze action.
	analysisInFlight atomic.Bool

	// chatInFlight guards the chat action.
	chatInFlight atomic.Bool
}

// ClientOption configures optional client dependencies, mainly so tests can
// inject a fake store or fake inference providers.
type ClientOption func(*clientOptions)

type clientOptions struct {
	store            kvstore.Store
	analysisProvider llm.Provider
	chatProvider     llm.Provider
}

// WithStore injects a pre-built key-value store, overriding the configured
// storage provider.
func WithStore(store kvstore.Store) ClientOption {
	return func(o *clientOptions) {
		o.store = store
	}
}

// WithAnalysisProvider injects the inference provider used for analysis calls.
func WithAnalysisProvider(provider llm.Provider) ClientOption {
	return func(o *clientOptions) {
		o.analysisProvider = provider
	}
}

// WithChatProvider injects the inference provider used for chat calls.
func WithChatProvider(provider llm.Provider) ClientOption {
	return func(o *clientOptions) {
		o.chatProvider = provider
	}
}

// NewClient creates a new CycleCare client.
//
// The client is initialized with:
//   - A key-value store (SQLite, PostgreSQL, MySQL, or in-memory)
//   - One inference provider per capability (analysis, chat)
//   - The profile store, history log, and chat session loaded from storage
//
// Parameters:
//   - cfg: Configuration containing storage and inference settings
//   - opts: Optional dependency overrides (fake store/providers for tests)
//
// Returns a new Client instance, or an error if initialization fails.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	store := options.store
	if store == nil {
		var err error
		store, err = initStorage(cfg.Storage)
		if err != nil {
			return nil, err
		}
	}

	credentials := llm.StaticCredential(cfg.AI.APIKey)

	analysisProvider := options.analysisProvider
	if analysisProvider == nil {
		var err error
		analysisProvider, err = openaiLLM.NewClient(&openaiLLM.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.AnalysisModel,
			BaseURL: cfg.AI.BaseURL,
		})
		if err != nil {
			return nil, NewSessionError("NewClient", err)
		}
	}

	chatProvider := options.chatProvider
	if chatProvider == nil {
		var err error
		chatProvider, err = openaiLLM.NewClient(&openaiLLM.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.ChatModel,
			BaseURL: cfg.AI.BaseURL,
		})
		if err != nil {
			return nil, NewSessionError("NewClient", err)
		}
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, NewSessionError("NewClient", err)
	}

	return &Client{
		config:  cfg,
		store:   store,
		profile: NewProfileStore(store),
		history: NewHistoryLog(store, cfg.HistoryLimit),
		chat:    NewChatSession(store, node),
		analyzer: analysis.NewClient(&analysis.Config{
			Provider:    analysisProvider,
			Credentials: credentials,
		}),
		assistant: assistant.NewClient(&assistant.Config{
			Provider:    chatProvider,
			Credentials: credentials,
		}),
		node: node,
	}, nil
}

// initStorage creates the key-value store for the configured provider.
func initStorage(cfg StorageConfig) (kvstore.Store, error) {
	switch cfg.Provider {
	case "sqlite":
		return sqliteStore.NewStore(&sqliteStore.Config{
			DBPath:    getStringConfig(cfg.Config, "db_path", "./cyclecare.db"),
			TableName: getStringConfig(cfg.Config, "table_name", ""),
		})
	case "postgres":
		return postgresStore.NewStore(&postgresStore.Config{
			Host:      getStringConfig(cfg.Config, "host", "localhost"),
			Port:      getIntConfig(cfg.Config, "port", 5432),
			User:      getStringConfig(cfg.Config, "user", "postgres"),
			Password:  getStringConfig(cfg.Config, "password", ""),
			DBName:    getStringConfig(cfg.Config, "db_name", "cyclecare"),
			TableName: getStringConfig(cfg.Config, "table_name", ""),
			SSLMode:   getStringConfig(cfg.Config, "ssl_mode", ""),
		})
	case "mysql":
		return mysqlStore.NewStore(&mysqlStore.Config{
			Host:      getStringConfig(cfg.Config, "host", "127.0.0.1"),
			Port:      getIntConfig(cfg.Config, "port", 3306),
			User:      getStringConfig(cfg.Config, "user", "root"),
			Password:  getStringConfig(cfg.Config, "password", ""),
			DBName:    getStringConfig(cfg.Config, "db_name", "cyclecare"),
			TableName: getStringConfig(cfg.Config, "table_name", ""),
		})
	case "memory":
		return memoryStore.NewStore(), nil
	default:
		return nil, NewSessionError("initStorage", ErrUnknownProvider)
	}
}

// getStringConfig reads a string value from a provider config map.
func getStringConfig(config map[string]interface{}, key, defaultValue string) string {
	if v, ok := config[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

// getIntConfig reads an integer value from a provider config map.
// JSON-decoded configs carry numbers as float64.
func getIntConfig(config map[string]interface{}, key string, defaultValue int) int {
	switch v := config[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return defaultValue
}

// Profile returns the current profile.
func (c *Client) Profile() Profile {
	return c.profile.Get()
}

// UpdateProfile merges the partial update over the current profile and
// persists the result. Returns the new profile value.
func (c *Client) UpdateProfile(update ProfileUpdate) Profile {
	return c.profile.Update(update)
}

// IsSetupComplete reports whether initial setup has finished.
func (c *Client) IsSetupComplete() bool {
	return c.profile.IsComplete()
}

// SeedIdentity seeds the profile name from the identity provider's display
// name, exactly once: only while both the name and the setup flag are still
// unset. Returns true if the name was seeded.
func (c *Client) SeedIdentity(displayName string) bool {
	if displayName == "" {
		return false
	}
	current := c.profile.Get()
	if current.Name != "" || current.CompletedSetup {
		return false
	}
	c.profile.Update(ProfileUpdate{Name: &displayName})
	return true
}

// CompleteQuiz merges the questionnaire answers, scores them exactly once,
// and persists the derived classification along with the quiz completion
// flag. Returns the new profile value.
func (c *Client) CompleteQuiz(answers ProfileUpdate) Profile {
	merged := c.profile.Update(answers)
	risk := AssessRisk(merged)
	done := true
	return c.profile.Update(ProfileUpdate{
		PCOSProbability: &risk,
		CompletedQuiz:   &done,
	})
}

// CompleteExtendedQuiz merges the extended questionnaire answers and sets
// the extended completion flag. Returns the new profile value.
func (c *Client) CompleteExtendedQuiz(answers ProfileUpdate) Profile {
	c.profile.Update(answers)
	done := true
	return c.profile.Update(ProfileUpdate{CompletedExtendedQuiz: &done})
}

// AnalyzeFood analyzes the food referenced by imageURL for the current
// profile and appends the result to the history log.
//
// A second concurrent call is rejected with ErrRequestInFlight. Expected AI
// failures surface as the llm taxonomy wrapped in a SessionError; the
// history is only written after a successful analysis, so a failure leaves
// state untouched. A returned item with Unrecognized() true is the caller's
// soft-failure signal.
func (c *Client) AnalyzeFood(ctx context.Context, imageURL string) (*FoodAnalysisItem, error) {
	if !c.analysisInFlight.CompareAndSwap(false, true) {
		return nil, NewSessionError("AnalyzeFood", ErrRequestInFlight)
	}
	defer c.analysisInFlight.Store(false)

	profile := c.profile.Get()
	result, err := c.analyzer.AnalyzeImage(ctx, imageURL, analysis.ProfileContext{
		Age:                profile.Age,
		Symptoms:           profile.Symptoms,
		InsulinResistant:   profile.InsulinResistant,
		WeightGoal:         string(profile.WeightGoal),
		DietaryPreferences: profile.DietaryPreferences,
	})
	if err != nil {
		return nil, NewSessionError("AnalyzeFood", err)
	}

	item := FoodAnalysisItem{
		ID:                c.node.Generate().Int64(),
		Date:              time.Now(),
		ImageURL:          imageURL,
		FoodName:          result.FoodName,
		PCOSCompatibility: result.PCOSCompatibility,
		NutritionalInfo: NutritionalInfo{
			Carbs:             result.Nutrition.Carbs,
			Protein:           result.Nutrition.Protein,
			Fats:              result.Nutrition.Fats,
			GlycemicLoad:      result.Nutrition.GlycemicLoad,
			InflammatoryScore: result.Nutrition.InflammatoryScore,
		},
		Recommendation: result.Recommendation,
		Alternatives:   result.Alternatives,
	}
	c.history.Append(item)
	return &item, nil
}

// SendMessage appends the user's message to the transcript, requests one
// assistant reply conditioned on the profile and the full turn history, and
// appends the reply.
//
// A second concurrent call is rejected with ErrRequestInFlight. On an AI
// failure the user's message remains in the transcript and the error is
// returned; the caller decides how to surface it.
//
// Returns the appended assistant message.
func (c *Client) SendMessage(ctx context.Context, text string) (ChatMessage, error) {
	return c.send(ctx, text, nil)
}

// ShareAnalysis sends a message that carries an existing analysis result
// into the conversation, then requests the assistant's reply the same way as
// SendMessage.
func (c *Client) ShareAnalysis(ctx context.Context, text string, item FoodAnalysisItem) (ChatMessage, error) {
	return c.send(ctx, text, &item)
}

func (c *Client) send(ctx context.Context, text string, shared *FoodAnalysisItem) (ChatMessage, error) {
	if !c.chatInFlight.CompareAndSwap(false, true) {
		return ChatMessage{}, NewSessionError("SendMessage", ErrRequestInFlight)
	}
	defer c.chatInFlight.Store(false)

	c.chat.AppendUserMessage(text, shared)

	transcript := c.chat.List()
	turns := make([]assistant.Turn, 0, len(transcript))
	for _, msg := range transcript {
		content := msg.Content
		if msg.FoodAnalysis != nil {
			content = content + "\n[Shared food analysis: " + msg.FoodAnalysis.FoodName + "]"
		}
		turns = append(turns, assistant.Turn{Role: msg.Role, Content: content})
	}

	profile := c.profile.Get()
	reply, err := c.assistant.Reply(ctx, turns, assistant.ProfileContext{
		Name:     profile.Name,
		Symptoms: profile.Symptoms,
	})
	if err != nil {
		return ChatMessage{}, NewSessionError("SendMessage", err)
	}

	return c.chat.AppendAssistantMessage(reply, nil), nil
}

// SeedGreeting seeds the assistant greeting when the transcript is empty and
// the profile has a name. Idempotent.
func (c *Client) SeedGreeting() {
	c.chat.SeedGreeting(c.profile.Get().Name)
}

// ShouldOfferExtendedQuestionnaire reports whether the UI should offer the
// extended questionnaire.
func (c *Client) ShouldOfferExtendedQuestionnaire() bool {
	return c.chat.ShouldOfferExtendedQuestionnaire(c.profile.Get().CompletedExtendedQuiz)
}

// History returns the food-analysis history, most recent first.
func (c *Client) History() []FoodAnalysisItem {
	return c.history.List()
}

// Transcript returns the chat transcript, oldest first.
func (c *Client) Transcript() []ChatMessage {
	return c.chat.List()
}

// Logout resets the profile, history, and transcript to their defaults and
// removes the persisted records.
func (c *Client) Logout() {
	c.profile.Reset()
	c.history.Reset()
	c.chat.Reset()
}

// Close closes the client and its underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// String returns a pointer to s, for building ProfileUpdate literals.
func String(s string) *string { return &s }

// Int returns a pointer to n, for building ProfileUpdate literals.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for building ProfileUpdate literals.
func Bool(b bool) *bool { return &b }
