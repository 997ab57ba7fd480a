package usecase

import (
	"context"

	"jbfsport-backend/pkg/cache"
)

const (
	keyCategoryTree = "category:tree:active"
	keyPagePrefix   = "page:"
	keyCatalogStats = "stats:catalog"
)

// invalidateCatalog drops everything the storefront caches after an admin write.
func invalidateCatalog(ctx context.Context, c cache.CacheService) {
	c.Delete(ctx, keyCategoryTree, keyCatalogStats)
	c.DeletePrefix(ctx, keyPagePrefix)
}
