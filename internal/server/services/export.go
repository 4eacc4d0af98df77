package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// ExportLinkValidity is how long a presigned export link stays usable.
const ExportLinkValidity = 15 * time.Minute

// ObjectStore is the blob storage an export is written to.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ExportResult locates a finished export.
type ExportResult struct {
	URL   string
	Key   string
	Count int
}

type exportedTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type exportDocument struct {
	OwnerID    string         `json:"ownerId"`
	ExportedAt time.Time      `json:"exportedAt"`
	Tasks      []exportedTask `json:"tasks"`
}

// ExportService snapshots an owner's tasks into object storage.
type ExportService struct {
	tasks tasks.Repository
	store ObjectStore
	now   func() time.Time
}

func NewExportService(repo tasks.Repository, store ObjectStore) *ExportService {
	return &ExportService{tasks: repo, store: store, now: time.Now}
}

// StorageKey returns exports/<owner>/<yyyy>/<mm>/<dd>/<uuid>.json for t.
func StorageKey(ownerID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.json", ownerID, t.Year(), int(t.Month()), t.Day(), uuid.NewString())
}

// Export writes the owner's tasks, in List order, as one JSON document and
// returns a presigned link to it.
func (s *ExportService) Export(ctx context.Context, ownerID string) (*ExportResult, error) {
	list, err := tasks.ForOwner(s.tasks, ownerID).List(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	doc := exportDocument{OwnerID: ownerID, ExportedAt: now, Tasks: make([]exportedTask, 0, len(list))}
	for _, t := range list {
		doc.Tasks = append(doc.Tasks, exportedTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	key := StorageKey(ownerID, now)
	if err := s.store.Put(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("error storing export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, ExportLinkValidity)
	if err != nil {
		return nil, fmt.Errorf("error signing export link: %w", err)
	}

	return &ExportResult{URL: url, Key: key, Count: len(doc.Tasks)}, nil
}
