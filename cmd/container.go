// container.go
package main

import (
	"context"
	"fmt"

	aiopenai "github.com/aidul23/agent-mem/pkg/ai/providers/openai"
	"github.com/aidul23/agent-mem/pkg/ai/llm"
	"github.com/aidul23/agent-mem/pkg/auth"
	"github.com/aidul23/agent-mem/pkg/chat/chatapi"
	"github.com/aidul23/agent-mem/pkg/chat/chatsrv"
	"github.com/aidul23/agent-mem/pkg/config"
	"github.com/aidul23/agent-mem/pkg/fsx"
	"github.com/aidul23/agent-mem/pkg/fsx/fsxlocal"
	"github.com/aidul23/agent-mem/pkg/fsx/fsxs3"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memoryapi"
	"github.com/aidul23/agent-mem/pkg/memory/memoryinfra"
	"github.com/aidul23/agent-mem/pkg/memory/memorysrv"
	"github.com/aidul23/agent-mem/pkg/profile"
	"github.com/aidul23/agent-mem/pkg/profile/profileapi"
	"github.com/aidul23/agent-mem/pkg/profile/profileinfra"
	"github.com/aidul23/agent-mem/pkg/profile/profilesrv"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB            *sqlx.DB
	Redis         *redis.Client
	FileSystem    fsx.FileSystem
	S3Client      *s3.Client
	MemoryBackend memory.Backend

	// Services
	MemoryManager    *memory.Manager
	ProfileService   *profilesrv.ProfileService
	ChatService      *chatsrv.ChatService
	IngestionService *memorysrv.IngestionService
	TokenService     auth.TokenService

	// API Handlers
	ProfileHandlers *profileapi.ProfileHandlers
	ChatHandlers    *chatapi.ChatHandlers
	MemoryHandlers  *memoryapi.MemoryHandlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware

	closeBackend func()
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("Initializing dependency container...")

	c := &Container{
		Config:       cfg,
		closeBackend: func() {},
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("Container initialized")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("Initializing infrastructure...")

	backend, closeBackend, err := memoryinfra.NewBackend(c.Config.Memory, c.Config.OpenAI)
	if err != nil {
		logx.Fatalf("Failed to initialize memory backend: %v", err)
	}
	c.MemoryBackend = backend
	c.closeBackend = closeBackend

	switch c.Config.Consent.Store {
	case config.ConsentStorePostgres:
		c.initDatabase()
	case config.ConsentStoreRedis:
		c.initRedis()
	}

	c.initFileStorage()

	logx.Info("Infrastructure initialized")
}

func (c *Container) initDatabase() {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Config.Database.Host,
		c.Config.Database.Port,
		c.Config.Database.User,
		c.Config.Database.Password,
		c.Config.Database.Name,
		c.Config.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("Database connected")
}

func (c *Container) initRedis() {
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (required by CONSENT_STORE=redis)", err)
	}
	logx.Info("Redis connected")
}

func (c *Container) initFileStorage() {
	storage := c.Config.Storage

	switch storage.Mode {
	case config.StorageModeS3:
		cfg, err := awsConfig.LoadDefaultConfig(context.TODO(), awsConfig.WithRegion(storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, storage.AWSBucket, storage.S3Prefix)
		logx.Infof("S3 file system configured (bucket: %s, region: %s)", storage.AWSBucket, storage.AWSRegion)

	default:
		localFS, err := fsxlocal.NewLocalFileSystem(storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("Local file system configured (path: %s)", localFS.GetBasePath())
	}
}

func (c *Container) profileRepository() profile.Repository {
	switch c.Config.Consent.Store {
	case config.ConsentStorePostgres:
		repo := profileinfra.NewPostgresProfileRepository(c.DB)
		if err := repo.Migrate(context.Background()); err != nil {
			logx.Fatalf("Failed to migrate user_profiles: %v", err)
		}
		return repo
	case config.ConsentStoreRedis:
		return profileinfra.NewRedisProfileRepository(c.Redis)
	default:
		logx.Warn("Using in-memory consent store (consent is lost on restart)")
		return profileinfra.NewInMemoryProfileRepository()
	}
}

func (c *Container) initServices() {
	logx.Info("Initializing services...")

	c.MemoryManager = memory.NewManager(c.MemoryBackend, kernel.NewCompanyID(c.Config.Memory.CompanyID))
	c.ProfileService = profilesrv.NewProfileService(c.profileRepository())
	c.IngestionService = memorysrv.NewIngestionService(c.MemoryManager, c.FileSystem)

	provider := aiopenai.NewOpenAIProvider(c.Config.OpenAI.APIKey, c.Config.OpenAI.BaseURL, c.Config.OpenAI.EmbeddingModel)
	client := llm.NewClient(provider, llm.WithModel(c.Config.OpenAI.Model))
	c.ChatService = chatsrv.NewChatService(client, c.MemoryManager, c.ProfileService, c.Config.Memory.EnterpriseMode)

	c.TokenService = auth.NewJWTServiceFromConfig(&c.Config.Auth.JWT)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService, c.Config.Auth.Enabled)

	c.ProfileHandlers = profileapi.NewProfileHandlers(c.ProfileService)
	c.ChatHandlers = chatapi.NewChatHandlers(c.ChatService)
	c.MemoryHandlers = memoryapi.NewMemoryHandlers(c.MemoryManager, c.IngestionService, c.Config.Memory.RuleLookupLimit)

	if c.Config.Memory.EnterpriseMode {
		logx.Infof("Enterprise mode enabled for company %s", c.Config.Memory.CompanyID)
	}
	logx.Info("All services and handlers initialized")
}

// HealthCheck pings the memory backend and the consent store
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	checks := map[string]error{
		"consent_store": c.ProfileService.Ping(ctx),
	}
	if pinger, ok := c.MemoryBackend.(memory.Pinger); ok {
		checks["memory"] = pinger.Ping(ctx)
	}
	return checks
}

// Cleanup closes all connections
func (c *Container) Cleanup() {
	logx.Info("Cleaning up resources...")

	c.closeBackend()

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("Redis connection closed")
		}
	}

	logx.Info("Cleanup completed")
}
