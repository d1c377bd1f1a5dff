package memorysrv

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/aidul23/agent-mem/pkg/fsx"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/google/uuid"
)

const (
	DefaultDocumentType    = "dfx_rule"
	DefaultDocumentVersion = "1.0"
	tagCompanyStandard     = "company_standard"
)

// IngestionService loads company documents into knowledge bases
type IngestionService struct {
	manager   *memory.Manager
	fs        fsx.FileSystem
	chunkSize int
}

// NewIngestionService creates the service. fs may be nil, in which case
// uploaded files are not kept.
func NewIngestionService(manager *memory.Manager, fs fsx.FileSystem) *IngestionService {
	return &IngestionService{
		manager:   manager,
		fs:        fs,
		chunkSize: DefaultChunkSize,
	}
}

type IngestRequest struct {
	FileName string
	Data     []byte

	DocumentType string
	Version      string
	Importance   memory.Importance

	// ProductID and Department pick the target knowledge base; both empty means the company KB
	ProductID  string
	Department string
}

type IngestResult struct {
	DocumentID string `json:"document_id"`
	BankID     string `json:"bank_id"`
	StoredPath string `json:"stored_path,omitempty"`
	Chunks     int    `json:"chunks"`
	Failed     int    `json:"failed"`
}

func (s *IngestionService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	importance := req.Importance
	if importance == "" {
		importance = memory.ImportanceHigh
	}
	if !importance.IsValid() {
		return nil, memory.ErrInvalidImportance().WithDetail("importance", string(importance))
	}
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		docType = DefaultDocumentType
	}
	version := strings.TrimSpace(req.Version)
	if version == "" {
		version = DefaultDocumentVersion
	}

	fileName := filepath.Base(strings.ReplaceAll(req.FileName, "\\", "/"))
	if fileName == "." || fileName == "/" || fileName == "" {
		fileName = "document.txt"
	}

	text, err := ExtractText(fileName, req.Data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, memory.ErrEmptyDocument().WithDetail("file", fileName)
	}

	result := &IngestResult{DocumentID: uuid.NewString()}

	if s.fs != nil {
		stored := path.Join("documents", result.DocumentID, fileName)
		if err := s.fs.WriteFile(ctx, stored, req.Data); err != nil {
			return nil, errx.Wrap(err, "failed to store uploaded document", errx.TypeInternal).
				WithDetail("file", fileName)
		}
		result.StoredPath = stored
	}

	bank := s.manager.ScopedKB(req.ProductID, req.Department)
	result.BankID = bank.ID()

	chunks := ChunkText(text, s.chunkSize)
	for i, chunk := range chunks {
		status := bank.RetainWithMetadata(ctx, chunk, memory.RetainOptions{
			Context:    fmt.Sprintf("%s_chunk_%d", docType, i),
			Importance: importance,
			Source:     fileName,
			Version:    version,
			Tags:       []string{docType, tagCompanyStandard},
		})
		if status != memory.StatusOK {
			result.Failed++
		}
	}
	result.Chunks = len(chunks)

	logx.WithFields(logx.Fields{
		"file":    fileName,
		"bank_id": result.BankID,
		"chunks":  result.Chunks,
		"failed":  result.Failed,
	}).Info("Ingested document")

	return result, nil
}
