package repository

import (
	"context"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
)

type Saver interface {
	// Save saves the record. Return values: postId, error
	Save(ctx context.Context, post models.Post) (int, error)
}
