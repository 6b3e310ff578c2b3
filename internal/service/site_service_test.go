package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pagehub/internal/domain"
	"github.com/spec-kit/pagehub/internal/events"
)

type fakeBucketStore struct {
	buckets   map[string]map[string][]byte
	types     map[string]string
	makeErr   error
	putErr    error
	removeErr error
}

func newFakeBucketStore() *fakeBucketStore {
	return &fakeBucketStore{
		buckets: make(map[string]map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *fakeBucketStore) MakeBucket(ctx context.Context, bucket string) error {
	if s.makeErr != nil {
		return s.makeErr
	}
	s.buckets[bucket] = make(map[string][]byte)
	return nil
}

func (s *fakeBucketStore) RemoveBucket(ctx context.Context, bucket string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.buckets, bucket)
	return nil
}

func (s *fakeBucketStore) PutObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	if s.putErr != nil {
		return s.putErr
	}
	objects, ok := s.buckets[bucket]
	if !ok {
		return errors.New("no such bucket")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	objects[key] = data
	s.types[bucket+"/"+key] = contentType
	return nil
}

func (s *fakeBucketStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	objects, ok := s.buckets[bucket]
	if !ok {
		return nil, "", errors.New("no such bucket")
	}
	data, ok := objects[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), s.types[bucket+"/"+key], nil
}

func (s *fakeBucketStore) RemoveAllObjects(ctx context.Context, bucket string) (int, error) {
	objects, ok := s.buckets[bucket]
	if !ok {
		return 0, nil
	}
	removed := len(objects)
	s.buckets[bucket] = make(map[string][]byte)
	return removed, nil
}

type fakeSiteRepo struct {
	sites     map[string]domain.Site
	createErr error
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: make(map[string]domain.Site)}
}

func (r *fakeSiteRepo) Create(ctx context.Context, site *domain.Site) error {
	if r.createErr != nil {
		return r.createErr
	}
	site.CreatedAt = time.Now()
	site.UpdatedAt = site.CreatedAt
	r.sites[site.ID] = *site
	return nil
}

func (r *fakeSiteRepo) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	site, ok := r.sites[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &site, nil
}

func (r *fakeSiteRepo) List(ctx context.Context) ([]domain.Site, error) {
	out := make([]domain.Site, 0, len(r.sites))
	for _, site := range r.sites {
		out = append(out, site)
	}
	return out, nil
}

func (r *fakeSiteRepo) UpdateStatus(ctx context.Context, id string, status domain.SiteStatus) error {
	site, ok := r.sites[id]
	if !ok {
		return pgx.ErrNoRows
	}
	site.Status = status
	r.sites[id] = site
	return nil
}

func (r *fakeSiteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sites[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sites, id)
	return nil
}

func newTestSiteService(repo *fakeSiteRepo, buckets *fakeBucketStore, dispatcher events.Dispatcher) *SiteService {
	return NewSiteService("test-site-", SiteDependencies{
		SiteRepo:   repo,
		Buckets:    buckets,
		Dispatcher: dispatcher,
	})
}

func TestCreateSiteProvisionsBucketAndDefaultContent(t *testing.T) {
	repo := newFakeSiteRepo()
	buckets := newFakeBucketStore()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventSiteCreated, func(ctx context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := newTestSiteService(repo, buckets, dispatcher)

	site, err := svc.CreateSite(context.Background(), "My Site")
	require.NoError(t, err)
	require.NotEmpty(t, site.ID)
	require.Equal(t, "test-site-"+site.ID, site.BucketName)
	require.Equal(t, domain.SiteStatusActive, site.Status)

	objects, ok := buckets.buckets[site.BucketName]
	require.True(t, ok, "bucket must exist")
	require.Contains(t, objects, "index.html")
	require.Contains(t, string(objects["index.html"]), "My Site")
	require.Equal(t, "text/html", buckets.types[site.BucketName+"/index.html"])

	_, err = repo.GetByID(context.Background(), site.ID)
	require.NoError(t, err)

	require.Len(t, published, 1)
	require.Equal(t, site.ID, published[0].SiteID)
}

func TestCreateSiteRequiresName(t *testing.T) {
	svc := newTestSiteService(newFakeSiteRepo(), newFakeBucketStore(), nil)

	_, err := svc.CreateSite(context.Background(), "   ")
	require.Error(t, err)
}

func TestCreateSiteCleansUpBucketOnRecordFailure(t *testing.T) {
	repo := newFakeSiteRepo()
	repo.createErr = errors.New("insert failed")
	buckets := newFakeBucketStore()

	svc := newTestSiteService(repo, buckets, nil)

	_, err := svc.CreateSite(context.Background(), "My Site")
	require.Error(t, err)
	require.Empty(t, buckets.buckets, "orphan bucket must be removed")
}

func TestCreateSiteFailsWhenBucketCannotBeMade(t *testing.T) {
	repo := newFakeSiteRepo()
	buckets := newFakeBucketStore()
	buckets.makeErr = errors.New("quota exceeded")

	svc := newTestSiteService(repo, buckets, nil)

	_, err := svc.CreateSite(context.Background(), "My Site")
	require.Error(t, err)
	require.Empty(t, repo.sites, "no record without a bucket")
}

func TestDeleteSiteEmptiesAndRemovesBucket(t *testing.T) {
	repo := newFakeSiteRepo()
	buckets := newFakeBucketStore()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventSiteDeleted, func(ctx context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := newTestSiteService(repo, buckets, dispatcher)

	site, err := svc.CreateSite(context.Background(), "My Site")
	require.NoError(t, err)

	require.NoError(t, svc.PutContent(context.Background(), site.ID, "about.html", "text/html", strings.NewReader("<p>about</p>"), 12))

	require.NoError(t, svc.DeleteSite(context.Background(), site.ID))

	_, err = svc.GetSite(context.Background(), site.ID)
	require.Error(t, err)
	require.NotContains(t, buckets.buckets, site.BucketName)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.SiteDeletedPayload)
	require.True(t, ok)
	require.Equal(t, 2, payload.ObjectsRemoved)
}

func TestDeleteSiteNotFound(t *testing.T) {
	svc := newTestSiteService(newFakeSiteRepo(), newFakeBucketStore(), nil)
	require.Error(t, svc.DeleteSite(context.Background(), "missing"))
}

func TestContentRoundtrip(t *testing.T) {
	repo := newFakeSiteRepo()
	buckets := newFakeBucketStore()
	svc := newTestSiteService(repo, buckets, nil)

	site, err := svc.CreateSite(context.Background(), "My Site")
	require.NoError(t, err)

	body := "<h1>hello</h1>"
	require.NoError(t, svc.PutContent(context.Background(), site.ID, "hello.html", "text/html", strings.NewReader(body), int64(len(body))))

	reader, contentType, err := svc.GetContent(context.Background(), site.ID, "hello.html")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, body, string(data))
	require.Equal(t, "text/html", contentType)
}

func TestGetContentDefaultsToIndex(t *testing.T) {
	svc := newTestSiteService(newFakeSiteRepo(), newFakeBucketStore(), nil)

	site, err := svc.CreateSite(context.Background(), "My Site")
	require.NoError(t, err)

	reader, _, err := svc.GetContent(context.Background(), site.ID, "")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Contains(t, string(data), "My Site")
}

func TestPutContentRequiresKey(t *testing.T) {
	svc := newTestSiteService(newFakeSiteRepo(), newFakeBucketStore(), nil)

	site, err := svc.CreateSite(context.Background(), "My Site")
	require.NoError(t, err)

	err = svc.PutContent(context.Background(), site.ID, "", "text/html", strings.NewReader("x"), 1)
	require.Error(t, err)
}
