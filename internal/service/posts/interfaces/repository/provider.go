package repository

import (
	"context"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
)

type Provider interface {
	// Posts returns every stored post in the order they should be displayed
	Posts(ctx context.Context) ([]models.Post, error)
}
