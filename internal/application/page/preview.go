package page

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
)

// PreviewStore keeps the image bytes behind locally generated preview
// references until they are released.
type PreviewStore struct {
	mu    sync.RWMutex
	items map[string]*model.Image
	log   ports.Logger
}

func NewPreviewStore(log ports.Logger) *PreviewStore {
	return &PreviewStore{
		items: make(map[string]*model.Image),
		log:   log,
	}
}

func (s *PreviewStore) Create(image *model.Image) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.items[id] = image
	s.mu.Unlock()

	s.log.Debug("Preview created", slog.String("preview_id", id), slog.Int("size", image.Size()))
	return id
}

func (s *PreviewStore) Get(id string) (*model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, ok := s.items[id]
	if !ok {
		return nil, custom_errors.ErrPreviewNotFound
	}
	return image, nil
}

// Release is a no-op for an empty or unknown id.
func (s *PreviewStore) Release(id string) {
	if id == "" {
		return
	}

	s.mu.Lock()
	_, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if ok {
		s.log.Debug("Preview released", slog.String("preview_id", id))
	}
}

func (s *PreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
