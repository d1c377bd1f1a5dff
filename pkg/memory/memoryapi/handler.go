package memoryapi

import (
	"io"
	"strings"
	"time"

	"github.com/aidul23/agent-mem/pkg/auth"
	"github.com/aidul23/agent-mem/pkg/httpx"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memorysrv"
	"github.com/gofiber/fiber/v2"
)

// MemoryHandlers expose knowledge-base management: ingestion, rule
// versioning, reflection and prioritized recall
type MemoryHandlers struct {
	manager     *memory.Manager
	ingestion   *memorysrv.IngestionService
	lookupLimit int
}

func NewMemoryHandlers(manager *memory.Manager, ingestion *memorysrv.IngestionService, lookupLimit int) *MemoryHandlers {
	return &MemoryHandlers{
		manager:     manager,
		ingestion:   ingestion,
		lookupLimit: lookupLimit,
	}
}

func (h *MemoryHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	api := router.Group("/api/v1", authMiddleware.Authenticate())

	api.Post("/documents", h.IngestDocument)
	api.Put("/rules/:rule_id", h.UpdateRule)
	api.Post("/reflections", h.Reflect)
	api.Get("/outdated", h.ListOutdated)
	api.Post("/memories/recall", h.Recall)
}

// RecordDTO is a recalled memory with its decoded header
type RecordDTO struct {
	Text       string     `json:"text"`
	Body       string     `json:"body"`
	Importance string     `json:"importance"`
	Version    string     `json:"version,omitempty"`
	Source     string     `json:"source,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

func toDTOs(records []memory.Record) []RecordDTO {
	dtos := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		dto := RecordDTO{
			Text:       r.Text,
			Body:       r.Body,
			Importance: string(r.Meta.Importance),
			Version:    r.Meta.Version,
			Source:     r.Meta.Source,
			Tags:       r.Meta.Tags,
		}
		if r.Meta.HasDate() {
			date := r.Meta.Date
			dto.Date = &date
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// IngestDocument accepts a multipart upload and loads it into a knowledge base
func (h *MemoryHandlers) IngestDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return httpx.ErrMissingUpload()
	}

	f, err := fh.Open()
	if err != nil {
		return httpx.ErrInvalidBody(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return httpx.ErrInvalidBody(err)
	}

	var importance memory.Importance
	if raw := c.FormValue("importance"); raw != "" {
		importance, err = memory.ParseImportance(raw)
		if err != nil {
			return err
		}
	}

	result, err := h.ingestion.Ingest(c.UserContext(), memorysrv.IngestRequest{
		FileName:     fh.Filename,
		Data:         data,
		DocumentType: c.FormValue("document_type"),
		Version:      c.FormValue("version"),
		Importance:   importance,
		ProductID:    c.FormValue("product_id"),
		Department:   c.FormValue("department"),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

type UpdateRuleRequest struct {
	Content       string `json:"content"`
	Version       string `json:"version"`
	ChangeSummary string `json:"change_summary"`
	ProductID     string `json:"product_id,omitempty"`
	Department    string `json:"department,omitempty"`
}

// UpdateRule stores a new version of a rule and supersedes the older ones
func (h *MemoryHandlers) UpdateRule(c *fiber.Ctx) error {
	var req UpdateRuleRequest
	if err := httpx.ParseJSON(c, &req); err != nil {
		return err
	}

	tracker := memorysrv.NewUpdateTracker(h.manager.ScopedKB(req.ProductID, req.Department), h.lookupLimit)
	result, err := tracker.UpdateRule(c.UserContext(), memorysrv.UpdateRuleRequest{
		RuleID:        c.Params("rule_id"),
		Content:       req.Content,
		Version:       req.Version,
		ChangeSummary: req.ChangeSummary,
	})
	if err != nil {
		return err
	}

	if authContext, ok := auth.GetAuthContext(c); ok {
		logx.WithFields(logx.Fields{
			"rule_id": result.RuleID,
			"version": result.Version,
			"user_id": authContext.UserID.String(),
		}).Info("Rule updated")
	}
	return c.JSON(result)
}

type ReflectRequest struct {
	Topic      string `json:"topic"`
	ProductID  string `json:"product_id,omitempty"`
	Department string `json:"department,omitempty"`
}

type ReflectResponse struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
	Found   bool   `json:"found"`
}

func (h *MemoryHandlers) Reflect(c *fiber.Ctx) error {
	var req ReflectRequest
	if err := httpx.ParseJSON(c, &req); err != nil {
		return err
	}

	svc := memorysrv.NewReflectionService(h.manager.ScopedKB(req.ProductID, req.Department))
	summary, found, err := svc.ReflectAndSummarize(c.UserContext(), req.Topic)
	if err != nil {
		return err
	}

	return c.JSON(ReflectResponse{
		Topic:   strings.TrimSpace(req.Topic),
		Summary: summary,
		Found:   found,
	})
}

// ListOutdated returns superseded-version records about a topic
func (h *MemoryHandlers) ListOutdated(c *fiber.Ctx) error {
	bank := h.manager.ScopedKB(c.Query("product_id"), c.Query("department"))

	records, err := memorysrv.NewReflectionService(bank).IdentifyOutdated(c.UserContext(), c.Query("topic"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"bank_id": bank.ID(),
		"records": toDTOs(records),
	})
}

type RecallRequest struct {
	Query            string `json:"query"`
	MinImportance    string `json:"min_importance"`
	Limit            int    `json:"limit"`
	PrioritizeRecent *bool  `json:"prioritize_recent"`
	ProductID        string `json:"product_id,omitempty"`
	Department       string `json:"department,omitempty"`
}

// Recall runs a prioritized recall against a knowledge base
func (h *MemoryHandlers) Recall(c *fiber.Ctx) error {
	var req RecallRequest
	if err := httpx.ParseJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Query) == "" {
		return memory.ErrInvalidQuery()
	}

	opts := memory.DefaultPriorityOptions()
	if req.PrioritizeRecent != nil {
		opts.PrioritizeRecent = *req.PrioritizeRecent
	}
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	minImportance, err := memory.ParseImportance(req.MinImportance)
	if err != nil {
		return err
	}
	opts.MinImportance = minImportance

	bank := h.manager.ScopedKB(req.ProductID, req.Department)
	result := bank.RecallWithPriority(c.UserContext(), req.Query, opts)

	return c.JSON(fiber.Map{
		"bank_id": bank.ID(),
		"status":  result.Status.String(),
		"records": toDTOs(result.Records),
	})
}
