package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/imageproc"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
	"github.com/vibast-solutions/ms-go-bridal/app/storage"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type mockPlanRepo struct {
	createFn              func(ctx context.Context, plan *entity.Plan) error
	updateFn              func(ctx context.Context, plan *entity.Plan, edit repository.ImageEdit) error
	editImagesFn          func(ctx context.Context, id, providerID string, edit repository.ImageEdit) ([]string, error)
	deleteFn              func(ctx context.Context, id, providerID string) error
	findByIDFn            func(ctx context.Context, id string) (*entity.Plan, error)
	findByIDForProviderFn func(ctx context.Context, id, providerID string) (*entity.Plan, error)
	listByProviderFn      func(ctx context.Context, providerID string) ([]*entity.Plan, error)
	listFavoritedByFn     func(ctx context.Context, userID string) ([]*entity.Plan, error)
	searchFn              func(ctx context.Context, f search.Filter) ([]*entity.Plan, error)
	listImageKeysFn       func(ctx context.Context) ([]string, error)
	// images is the stored image list the default edits run against.
	images []string
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *entity.Plan, edit repository.ImageEdit) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, plan, edit)
	}
	if edit == nil {
		return nil
	}
	images, err := edit(m.images)
	if err != nil {
		return err
	}
	m.images = images
	plan.Images = images
	return nil
}

func (m *mockPlanRepo) EditImages(ctx context.Context, id, providerID string, _ time.Time, edit repository.ImageEdit) ([]string, error) {
	if m.editImagesFn != nil {
		return m.editImagesFn(ctx, id, providerID, edit)
	}
	images, err := edit(m.images)
	if err != nil {
		return nil, err
	}
	m.images = images
	return images, nil
}

func (m *mockPlanRepo) Delete(ctx context.Context, id, providerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, providerID)
	}
	return nil
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepo) FindByIDForProvider(ctx context.Context, id, providerID string) (*entity.Plan, error) {
	if m.findByIDForProviderFn != nil {
		return m.findByIDForProviderFn(ctx, id, providerID)
	}
	return nil, nil
}

func (m *mockPlanRepo) ListByProvider(ctx context.Context, providerID string) ([]*entity.Plan, error) {
	if m.listByProviderFn != nil {
		return m.listByProviderFn(ctx, providerID)
	}
	return nil, nil
}

func (m *mockPlanRepo) ListFavoritedBy(ctx context.Context, userID string) ([]*entity.Plan, error) {
	if m.listFavoritedByFn != nil {
		return m.listFavoritedByFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPlanRepo) Search(ctx context.Context, f search.Filter) ([]*entity.Plan, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, f)
	}
	return nil, nil
}

func (m *mockPlanRepo) ListImageKeys(ctx context.Context) ([]string, error) {
	if m.listImageKeysFn != nil {
		return m.listImageKeysFn(ctx)
	}
	return nil, nil
}

type mockProviderRepo struct {
	createFn               func(ctx context.Context, provider *entity.Provider) error
	updateFn               func(ctx context.Context, provider *entity.Provider) error
	findByIDFn             func(ctx context.Context, id string) (*entity.Provider, error)
	findByEmailFn          func(ctx context.Context, email string) (*entity.Provider, error)
	listProfileImageKeysFn func(ctx context.Context) ([]string, error)
}

func (m *mockProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	if m.createFn != nil {
		return m.createFn(ctx, provider)
	}
	return nil
}

func (m *mockProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, provider)
	}
	return nil
}

func (m *mockProviderRepo) FindByID(ctx context.Context, id string) (*entity.Provider, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProviderRepo) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockProviderRepo) ListProfileImageKeys(ctx context.Context) ([]string, error) {
	if m.listProfileImageKeysFn != nil {
		return m.listProfileImageKeysFn(ctx)
	}
	return nil, nil
}

type storeCall struct {
	bucket string
	key    string
}

type fakeStore struct {
	putErr    map[string]error
	deleteErr map[string]error
	objects   map[string][]storage.Object
	puts      []storeCall
	deletes   []storeCall
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, _ []byte, _ string) error {
	f.puts = append(f.puts, storeCall{bucket: bucket, key: key})
	for marker, err := range f.putErr {
		if strings.Contains(key, marker) {
			return err
		}
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, bucket, key string) error {
	f.deletes = append(f.deletes, storeCall{bucket: bucket, key: key})
	if err, ok := f.deleteErr[key]; ok {
		return err
	}
	return nil
}

func (f *fakeStore) List(_ context.Context, bucket string) ([]storage.Object, error) {
	return f.objects[bucket], nil
}

// fakeImages accepts any file whose name does not start with "bad".
type fakeImages struct{}

func (fakeImages) Prepare(filename string, data []byte) (*imageproc.Image, error) {
	if len(filename) >= 3 && filename[:3] == "bad" {
		return nil, errors.New("unsupported")
	}
	return &imageproc.Image{Data: data, ContentType: "image/png", Ext: "png"}, nil
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		PlanImagesBucket:    "plan-images",
		ProfileImagesBucket: "provider-profiles",
	}
}
