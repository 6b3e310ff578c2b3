package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/pagehub/internal/domain"
	"github.com/spec-kit/pagehub/internal/events"
	"github.com/spec-kit/pagehub/internal/repository"
	apperrors "github.com/spec-kit/pagehub/pkg/util"
)

const defaultObjectKey = "index.html"

// SiteService coordinates site provisioning: one bucket per site plus a
// structured record, created and torn down together.
type SiteService struct {
	sites        repository.SiteRepository
	buckets      BucketStore
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	bucketPrefix string
}

// SiteDependencies encapsulates requirements for the site service.
type SiteDependencies struct {
	SiteRepo   repository.SiteRepository
	Buckets    BucketStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSiteService builds the service.
func NewSiteService(bucketPrefix string, deps SiteDependencies) *SiteService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if bucketPrefix == "" {
		bucketPrefix = "pagehub-site-"
	}
	return &SiteService{
		sites:        deps.SiteRepo,
		buckets:      deps.Buckets,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		bucketPrefix: bucketPrefix,
	}
}

// CreateSite provisions the bucket, uploads default content, and records
// the site. The bucket is removed again if the record cannot be written.
func (s *SiteService) CreateSite(ctx context.Context, name string) (*domain.Site, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	site := &domain.Site{
		ID:     uuid.NewString(),
		Name:   name,
		Status: domain.SiteStatusActive,
	}
	site.BucketName = s.bucketPrefix + site.ID

	if err := s.buckets.MakeBucket(ctx, site.BucketName); err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", site.BucketName, err)
	}

	content := defaultSiteHTML(site.Name, site.ID, time.Now().UTC())
	if err := s.buckets.PutObject(ctx, site.BucketName, defaultObjectKey, "text/html", strings.NewReader(content), int64(len(content))); err != nil {
		s.cleanupBucket(ctx, site.BucketName)
		return nil, fmt.Errorf("upload default content: %w", err)
	}

	if err := s.sites.Create(ctx, site); err != nil {
		s.cleanupBucket(ctx, site.BucketName)
		return nil, apperrors.NewPersistenceError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSiteCreated,
		SiteID:    site.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.SiteCreatedPayload{Name: site.Name, BucketName: site.BucketName},
	})

	s.logger.Info("site created",
		zap.String("site_id", site.ID),
		zap.String("bucket", site.BucketName))
	return site, nil
}

// GetSite fetches one site.
func (s *SiteService) GetSite(ctx context.Context, id string) (*domain.Site, error) {
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("site", map[string]any{"site_id": id})
		}
		return nil, err
	}
	return site, nil
}

// ListSites returns all sites, newest first.
func (s *SiteService) ListSites(ctx context.Context) ([]domain.Site, error) {
	return s.sites.List(ctx)
}

// DeleteSite empties and removes the site's bucket, then deletes the record.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	site, err := s.GetSite(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sites.UpdateStatus(ctx, site.ID, domain.SiteStatusDeleting); err != nil {
		return apperrors.NewPersistenceError(err)
	}

	removed, err := s.buckets.RemoveAllObjects(ctx, site.BucketName)
	if err != nil {
		return fmt.Errorf("empty bucket %s: %w", site.BucketName, err)
	}
	if err := s.buckets.RemoveBucket(ctx, site.BucketName); err != nil {
		return fmt.Errorf("remove bucket %s: %w", site.BucketName, err)
	}

	if err := s.sites.Delete(ctx, site.ID); err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSiteDeleted,
		SiteID:    site.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.SiteDeletedPayload{BucketName: site.BucketName, ObjectsRemoved: removed},
	})

	s.logger.Info("site deleted",
		zap.String("site_id", site.ID),
		zap.Int("objects_removed", removed))
	return nil
}

// GetContent streams an object from the site's bucket. An empty key serves
// the default document.
func (s *SiteService) GetContent(ctx context.Context, siteID, key string) (io.ReadCloser, string, error) {
	site, err := s.GetSite(ctx, siteID)
	if err != nil {
		return nil, "", err
	}
	if key == "" {
		key = defaultObjectKey
	}
	return s.buckets.GetObject(ctx, site.BucketName, key)
}

// PutContent uploads an object into the site's bucket.
func (s *SiteService) PutContent(ctx context.Context, siteID, key, contentType string, body io.Reader, size int64) error {
	site, err := s.GetSite(ctx, siteID)
	if err != nil {
		return err
	}
	if key == "" {
		return apperrors.NewValidationError("object key required", nil)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.buckets.PutObject(ctx, site.BucketName, key, contentType, body, size)
}

func (s *SiteService) cleanupBucket(ctx context.Context, bucket string) {
	if _, err := s.buckets.RemoveAllObjects(ctx, bucket); err != nil {
		s.logger.Warn("cleanup: empty bucket failed", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	if err := s.buckets.RemoveBucket(ctx, bucket); err != nil {
		s.logger.Warn("cleanup: remove bucket failed", zap.String("bucket", bucket), zap.Error(err))
	}
}

func (s *SiteService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func defaultSiteHTML(name, id string, created time.Time) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>%s</title>
</head>
<body>
  <h1>%s</h1>
  <p>This site is live. Replace this page by uploading your own content.</p>
  <footer>
    <small>site %s &middot; created %s</small>
  </footer>
</body>
</html>
`, name, name, id, created.Format(time.RFC3339))
}
