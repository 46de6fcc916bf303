package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/imageproc"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
	"github.com/vibast-solutions/ms-go-bridal/app/session"
	"github.com/vibast-solutions/ms-go-bridal/app/storage"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

const (
	testPlanID     = "3f1c2a9e-8b7d-4c6e-9a1b-2d3e4f5a6b7c"
	testProviderID = "prov-1"
	testUserID     = "user-1"
)

type controllerPlanRepo struct {
	createFn              func(ctx context.Context, plan *entity.Plan) error
	updateFn              func(ctx context.Context, plan *entity.Plan, edit repository.ImageEdit) error
	editImagesFn          func(ctx context.Context, id, providerID string, edit repository.ImageEdit) ([]string, error)
	deleteFn              func(ctx context.Context, id, providerID string) error
	findByIDFn            func(ctx context.Context, id string) (*entity.Plan, error)
	findByIDForProviderFn func(ctx context.Context, id, providerID string) (*entity.Plan, error)
	listByProviderFn      func(ctx context.Context, providerID string) ([]*entity.Plan, error)
	listFavoritedByFn     func(ctx context.Context, userID string) ([]*entity.Plan, error)
	searchFn              func(ctx context.Context, f search.Filter) ([]*entity.Plan, error)
}

func (r *controllerPlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	if r.createFn != nil {
		return r.createFn(ctx, plan)
	}
	return nil
}

func (r *controllerPlanRepo) Update(ctx context.Context, plan *entity.Plan, edit repository.ImageEdit) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, plan, edit)
	}
	return nil
}

func (r *controllerPlanRepo) EditImages(ctx context.Context, id, providerID string, _ time.Time, edit repository.ImageEdit) ([]string, error) {
	if r.editImagesFn != nil {
		return r.editImagesFn(ctx, id, providerID, edit)
	}
	return edit(nil)
}

func (r *controllerPlanRepo) Delete(ctx context.Context, id, providerID string) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id, providerID)
	}
	return nil
}

func (r *controllerPlanRepo) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerPlanRepo) FindByIDForProvider(ctx context.Context, id, providerID string) (*entity.Plan, error) {
	if r.findByIDForProviderFn != nil {
		return r.findByIDForProviderFn(ctx, id, providerID)
	}
	return nil, nil
}

func (r *controllerPlanRepo) ListByProvider(ctx context.Context, providerID string) ([]*entity.Plan, error) {
	if r.listByProviderFn != nil {
		return r.listByProviderFn(ctx, providerID)
	}
	return nil, nil
}

func (r *controllerPlanRepo) ListFavoritedBy(ctx context.Context, userID string) ([]*entity.Plan, error) {
	if r.listFavoritedByFn != nil {
		return r.listFavoritedByFn(ctx, userID)
	}
	return nil, nil
}

func (r *controllerPlanRepo) Search(ctx context.Context, f search.Filter) ([]*entity.Plan, error) {
	if r.searchFn != nil {
		return r.searchFn(ctx, f)
	}
	return nil, nil
}

func (r *controllerPlanRepo) ListImageKeys(context.Context) ([]string, error) {
	return nil, nil
}

type controllerProviderRepo struct {
	createFn      func(ctx context.Context, provider *entity.Provider) error
	updateFn      func(ctx context.Context, provider *entity.Provider) error
	findByIDFn    func(ctx context.Context, id string) (*entity.Provider, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.Provider, error)
}

func (r *controllerProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	if r.createFn != nil {
		return r.createFn(ctx, provider)
	}
	return nil
}

func (r *controllerProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, provider)
	}
	return nil
}

func (r *controllerProviderRepo) FindByID(ctx context.Context, id string) (*entity.Provider, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerProviderRepo) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	if r.findByEmailFn != nil {
		return r.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (r *controllerProviderRepo) ListProfileImageKeys(context.Context) ([]string, error) {
	return nil, nil
}

type controllerUserRepo struct {
	createFn      func(ctx context.Context, user *entity.User) error
	findByIDFn    func(ctx context.Context, id string) (*entity.User, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func (r *controllerUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, user)
	}
	return nil
}

func (r *controllerUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.findByEmailFn != nil {
		return r.findByEmailFn(ctx, email)
	}
	return nil, nil
}

type controllerFavoriteRepo struct {
	addFn    func(ctx context.Context, favorite *entity.Favorite) error
	removeFn func(ctx context.Context, userID, planID string) error
	existsFn func(ctx context.Context, userID, planID string) (bool, error)
}

func (r *controllerFavoriteRepo) Add(ctx context.Context, favorite *entity.Favorite) error {
	if r.addFn != nil {
		return r.addFn(ctx, favorite)
	}
	return nil
}

func (r *controllerFavoriteRepo) Remove(ctx context.Context, userID, planID string) error {
	if r.removeFn != nil {
		return r.removeFn(ctx, userID, planID)
	}
	return nil
}

func (r *controllerFavoriteRepo) Exists(ctx context.Context, userID, planID string) (bool, error) {
	if r.existsFn != nil {
		return r.existsFn(ctx, userID, planID)
	}
	return false, nil
}

type controllerInquiryRepo struct {
	createFn         func(ctx context.Context, inquiry *entity.Inquiry) error
	listByProviderFn func(ctx context.Context, providerID string) ([]*entity.Inquiry, error)
}

func (r *controllerInquiryRepo) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	if r.createFn != nil {
		return r.createFn(ctx, inquiry)
	}
	return nil
}

func (r *controllerInquiryRepo) ListByProvider(ctx context.Context, providerID string) ([]*entity.Inquiry, error) {
	if r.listByProviderFn != nil {
		return r.listByProviderFn(ctx, providerID)
	}
	return nil, nil
}

type controllerStore struct {
	objects map[string][]storage.Object
	puts    []string
	deletes []string
}

func (s *controllerStore) Put(_ context.Context, _, key string, _ []byte, _ string) error {
	s.puts = append(s.puts, key)
	return nil
}

func (s *controllerStore) Delete(_ context.Context, _, key string) error {
	s.deletes = append(s.deletes, key)
	return nil
}

func (s *controllerStore) List(_ context.Context, bucket string) ([]storage.Object, error) {
	return s.objects[bucket], nil
}

func (s *controllerStore) PublicURL(bucket, key string) string {
	return "https://cdn.example.com/" + bucket + "/" + key
}

// controllerImages rejects files whose name starts with "bad".
type controllerImages struct{}

func (controllerImages) Prepare(filename string, data []byte) (*imageproc.Image, error) {
	if strings.HasPrefix(filename, "bad") {
		return nil, errors.New("unsupported")
	}
	return &imageproc.Image{Data: data, ContentType: "image/png", Ext: "png"}, nil
}

type memSessionStore struct {
	sessions map[string]*session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*session.Session{}}
}

func (s *memSessionStore) Create(_ context.Context, kind session.Kind, subjectID, email string) (*session.Session, error) {
	sess := &session.Session{Token: "token-" + subjectID, Kind: kind, SubjectID: subjectID, Email: email}
	s.sessions[sess.Token] = sess
	return sess, nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	return s.sessions[token], nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{PlanImagesBucket: "plan-images", ProfileImagesBucket: "provider-profiles"}
}

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{MaxImageBytes: 1024, MaxFiles: 3}
}

func testMapper() *mapper.Mapper {
	return mapper.New(&controllerStore{}, testStorageConfig())
}

func newContext(method, target, body string, sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	if sess != nil {
		session.Set(ctx, sess)
	}
	return ctx, rec
}

func providerSession() *session.Session {
	return &session.Session{Token: "t-prov", Kind: session.KindProvider, SubjectID: testProviderID, Email: "studio@example.com"}
}

func userSession() *session.Session {
	return &session.Session{Token: "t-user", Kind: session.KindUser, SubjectID: testUserID, Email: "hanako@example.com"}
}

func testJobsConfig() config.JobsConfig {
	return config.JobsConfig{OrphanGracePeriod: 24 * time.Hour}
}
