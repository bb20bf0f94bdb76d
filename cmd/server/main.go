package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/DavidBolaji/rag-project/internal/adapter/api"
	"github.com/DavidBolaji/rag-project/internal/adapter/client"
	"github.com/DavidBolaji/rag-project/internal/adapter/store"
	"github.com/DavidBolaji/rag-project/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		log.Println("Warning: .env.dev file not found, using system environment variables")
	}
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	qdrantHost := os.Getenv("QDRANT_HOST")
	qdrantPortStr := os.Getenv("QDRANT_PORT")
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	location := os.Getenv("GOOGLE_CLOUD_LOCATION")
	tokenLimitStr := os.Getenv("USER_TOKEN_LIMIT")
	uploadDir := os.Getenv("UPLOAD_DIR")
	feedbackRoot := os.Getenv("FEEDBACK_DIR")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	whisperModel := os.Getenv("WHISPER_MODEL")

	qdrantPort, _ := strconv.Atoi(qdrantPortStr)
	tokenLimit, _ := strconv.Atoi(tokenLimitStr)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if feedbackRoot == "" {
		feedbackRoot = "data"
	}
	if whisperModel == "" {
		whisperModel = "whisper-1"
	}

	// The upload directory is created exactly once here and passed into the
	// orchestrator as configuration.
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	// Redis for Rate Limiting
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	// Qdrant for the guidance knowledge base
	qClient, err := qdrant.NewClient(&qdrant.Config{
		Host: qdrantHost,
		Port: qdrantPort,
	})
	if err != nil {
		log.Fatalf("failed to connect to qdrant: %v", err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	primaryModel := client.NewGeminiGenerator(genaiClient, "gemini-2.5-flash")
	fallbackModel := client.NewGeminiGenerator(genaiClient, "gemini-1.5-flash")
	generator := usecase.NewResilientGenerator(primaryModel, fallbackModel)

	embedder := client.NewEmbedder(genaiClient, "text-embedding-004")
	classifier := client.NewGeminiClassifier(genaiClient, "gemini-2.5-flash")
	translator := client.NewGeminiTranslator(genaiClient, "gemini-2.5-flash")
	evaluator := client.NewGeminiEvaluator(genaiClient, "gemini-2.5-flash")
	transcriber := client.NewWhisperTranscriber(openaiKey, whisperModel)

	knowledge := store.NewQdrantKnowledge(qClient, os.Getenv("QDRANT_COLLECTION"))
	if err := knowledge.InitCollection(ctx, 768); err != nil {
		log.Fatalf("failed to init qdrant collection: %v", err)
	}

	feedbackStore, err := store.NewBlobFeedbackStore(feedbackRoot)
	if err != nil {
		log.Fatalf("failed to init feedback store: %v", err)
	}

	tokenLimiter := store.NewRedisLimiter(rdb, tokenLimit)

	engine := usecase.NewRAGEngine(classifier, embedder, knowledge, generator)

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(engine, translator, transcriber, evaluator, feedbackStore, tokenLimiter, usecase.Config{
		UploadDir: uploadDir,
	})

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := embedder.CreateEmbedding(warmCtx, "warmup"); err != nil {
			log.Printf("[WARMER] Embedder warm-up failed: %v", err)
		}

		if _, err := generator.Generate(warmCtx, "."); err != nil {
			log.Printf("[WARMER] Gemini warm-up failed: %v", err)
		}

		log.Println("[WARMER] Pre-warm complete. Assistant is HOT.")
	}()

	// Initialize API Layer (Delivery Layer)
	app := fiber.New(fiber.Config{
		AppName: "Immigration Q&A Gateway",
	})

	handler := api.NewQuestionHandler(orchestrator)
	api.SetupRouter(app, handler)

	// Start Server
	log.Printf("Immigration Q&A Gateway running on port %s", os.Getenv("PORT"))
	log.Fatal(app.Listen(":" + os.Getenv("PORT")))
}
