// util/cache_service.go

package util

import (
	"context"

	"github.com/en18031/conformity/db"
	"github.com/en18031/conformity/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetProjectProgress(ctx context.Context, projectID string) (*model.ProjectProgress, error) {
	return db.GetCachedProjectProgress(ctx, projectID)
}

func (c *CacheService) SetProjectProgress(ctx context.Context, progress model.ProjectProgress) error {
	return db.CacheProjectProgress(ctx, &progress)
}

func (c *CacheService) DeleteProjectProgress(ctx context.Context, projectID string) error {
	return db.DeleteCachedProjectProgress(ctx, projectID)
}
