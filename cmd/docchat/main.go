// Command docchat is a terminal chatbot over an indexed internal document
// corpus, with document-search and inquiry answer modes.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/config/file"
	openaiembed "github.com/naikan-labs/docchat-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/naikan-labs/docchat-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/naikan-labs/docchat-cli/internal/adapters/driven/llm/openai"
	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/vectorstore/chroma"
	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
	"github.com/naikan-labs/docchat-cli/internal/core/services"
	"github.com/naikan-labs/docchat-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// closers collects resources opened during wiring, released on exit.
var closers []func() error

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(buildServices)

	err := cli.Execute()
	for _, fn := range closers {
		_ = fn()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires config, adapters, and services. Called once by the
// root command after flags are parsed; configDir comes from --config.
func buildServices(configDir string) error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("creating prompt store: %w", err)
	}

	llm := buildLLM(configStore)
	embedding := buildEmbedding(configStore)
	vectorIndex := chroma.NewIndex(chroma.Config{
		BaseURL:    configStore.GetString(file.KeyVectorBaseURL, ""),
		Collection: configStore.GetString(file.KeyVectorColl, ""),
	})

	ragOpts := services.RAGOptions{
		TopK:      configStore.GetInt(file.KeyRetrievalTopK, 5),
		MaxTokens: configStore.GetInt(file.KeyRetrievalMaxTok, 1024),
	}
	retriever := services.NewRAGService(llm, embedding, vectorIndex, promptStore, ragOpts)

	// Eval runs persist locally; the chat transcript never does.
	var evalStore driven.EvalStore
	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	if store, err := sqlite.NewEvalStore(dataDir); err != nil {
		logger.Warn("eval store unavailable, runs will not be persisted: %v", err)
	} else {
		evalStore = store
		closers = append(closers, store.Close)
	}

	factory := func(topK int) driven.Retriever {
		opts := ragOpts
		opts.TopK = topK
		return services.NewRAGService(llm, embedding, vectorIndex, promptStore, opts)
	}

	cli.SetServices(cli.Services{
		Chat:        services.NewChatService(retriever),
		Session:     services.NewSession(),
		EvalRunner:  services.NewEvalService(factory, evalStore),
		EvalStore:   evalStore,
		ConfigStore: configStore,
	})

	return nil
}

// buildLLM constructs the configured chat model client. OpenAI when an API
// key is stored, local Ollama otherwise.
func buildLLM(cfg *file.ConfigStore) driven.LLMService {
	provider := cfg.GetString(file.KeyLLMProvider, "")
	apiKey := cfg.GetString(file.KeyLLMAPIKey, "")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if provider == "" {
		provider = "ollama"
		if apiKey != "" {
			provider = "openai"
		}
	}

	switch provider {
	case "openai":
		llm, err := openaillm.NewLLMService(openaillm.Config{
			APIKey:  apiKey,
			BaseURL: cfg.GetString(file.KeyLLMBaseURL, ""),
			Model:   cfg.GetString(file.KeyLLMModel, ""),
			Timeout: 120 * time.Second,
		})
		if err != nil {
			logger.Warn("openai llm unavailable: %v", err)
			return nil
		}
		return llm
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.GetString(file.KeyLLMBaseURL, ""),
			Model:   cfg.GetString(file.KeyLLMModel, ""),
		})
	default:
		logger.Warn("unknown llm provider %q", provider)
		return nil
	}
}

// buildEmbedding constructs the embedding client. The corpus is indexed
// with OpenAI embeddings, so queries must use the same model family.
func buildEmbedding(cfg *file.ConfigStore) driven.EmbeddingService {
	apiKey := cfg.GetString(file.KeyLLMAPIKey, "")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	embed, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: apiKey,
		Model:  cfg.GetString(file.KeyEmbeddingModel, ""),
	})
	if err != nil {
		logger.Warn("embedding service unavailable: %v", err)
		return nil
	}
	return embed
}
