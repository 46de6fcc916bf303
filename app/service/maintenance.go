package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/metrics"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type planImageKeyLister interface {
	ListImageKeys(ctx context.Context) ([]string, error)
}

type profileImageKeyLister interface {
	ListProfileImageKeys(ctx context.Context) ([]string, error)
}

type SweepResult struct {
	PlanImagesDeleted    int
	ProfileImagesDeleted int
	Failed               int
}

type MaintenanceService struct {
	planKeys    planImageKeyLister
	profileKeys profileImageKeyLister
	store       objectStore
	storageCfg  config.StorageConfig
	gracePeriod time.Duration
	logger      logrus.FieldLogger
}

func NewMaintenanceService(
	planKeys planImageKeyLister,
	profileKeys profileImageKeyLister,
	store objectStore,
	storageCfg config.StorageConfig,
	jobsCfg config.JobsConfig,
) *MaintenanceService {
	return &MaintenanceService{
		planKeys:    planKeys,
		profileKeys: profileKeys,
		store:       store,
		storageCfg:  storageCfg,
		gracePeriod: jobsCfg.OrphanGracePeriod,
		logger:      factory.NewModuleLogger("maintenance-service"),
	}
}

// SweepOrphanImages deletes stored images that no plan or provider
// references and that are older than the grace period. Recent objects are
// kept so an upload whose row is not yet saved survives.
func (s *MaintenanceService) SweepOrphanImages(ctx context.Context) (*SweepResult, error) {
	cutoff := time.Now().UTC().Add(-s.gracePeriod)
	result := &SweepResult{}

	planKeys, err := s.planKeys.ListImageKeys(ctx)
	if err != nil {
		return nil, err
	}
	deleted, failed, err := s.sweepBucket(ctx, s.storageCfg.PlanImagesBucket, planKeys, cutoff)
	if err != nil {
		return nil, err
	}
	result.PlanImagesDeleted = deleted
	result.Failed += failed

	profileKeys, err := s.profileKeys.ListProfileImageKeys(ctx)
	if err != nil {
		return nil, err
	}
	deleted, failed, err = s.sweepBucket(ctx, s.storageCfg.ProfileImagesBucket, profileKeys, cutoff)
	if err != nil {
		return nil, err
	}
	result.ProfileImagesDeleted = deleted
	result.Failed += failed

	return result, nil
}

func (s *MaintenanceService) sweepBucket(ctx context.Context, bucket string, referenced []string, cutoff time.Time) (int, int, error) {
	keep := make(map[string]bool, len(referenced))
	for _, key := range referenced {
		keep[key] = true
	}

	objects, err := s.store.List(ctx, bucket)
	if err != nil {
		return 0, 0, err
	}

	deleted, failed := 0, 0
	for _, obj := range objects {
		if keep[obj.Key] || obj.LastModified.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, bucket, obj.Key); err != nil {
			failed++
			s.logger.WithError(err).WithField("bucket", bucket).WithField("key", obj.Key).Warn("Orphan image delete failed")
			continue
		}
		deleted++
		metrics.OrphanImagesDeleted.WithLabelValues(bucket).Inc()
	}
	return deleted, failed, nil
}
