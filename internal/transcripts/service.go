package transcripts

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Bridgette013/Truthseeker/internal/extract"
	"github.com/Bridgette013/Truthseeker/internal/shared/storage/object"
)

// ErrInvalidInput marks rejected uploads.
var ErrInvalidInput = errors.New("invalid input")

// Transcript is an uploaded chat export with its extracted text.
type Transcript struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"storageKey"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Service stores chat exports and extracts their conversation text.
type Service struct {
	Store object.ObjectStore
}

func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Upload saves the export to object storage and extracts its text. The
// extracted text is what callers feed into a conversation analysis.
func (s *Service) Upload(ctx context.Context, clientID, fileName string, r io.Reader) (Transcript, error) {
	if fileName == "" {
		return Transcript{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, clientID, fileName, r)
	if err != nil {
		return Transcript{}, err
	}

	text, err := extract.FromStore(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		return Transcript{}, err
	}

	return Transcript{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
