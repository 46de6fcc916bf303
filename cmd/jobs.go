package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

var sweepOrphansWorker bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run background maintenance jobs",
}

var sweepOrphansCmd = &cobra.Command{
	Use:   "sweep-orphans",
	Short: "Delete stored images no plan or provider references",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"sweep_orphans",
			sweepOrphansWorker,
			func(cfg *config.Config) string { return cfg.Jobs.OrphanSweepSchedule },
			func(s *service.MaintenanceService, ctx context.Context) error {
				result, err := s.SweepOrphanImages(ctx)
				if err != nil {
					return err
				}
				logrus.WithFields(logrus.Fields{
					"job":                    "sweep_orphans",
					"plan_images_deleted":    result.PlanImagesDeleted,
					"profile_images_deleted": result.ProfileImagesDeleted,
					"failed":                 result.Failed,
				}).Info("Orphan sweep finished")
				return nil
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(sweepOrphansCmd)

	sweepOrphansCmd.Flags().BoolVar(&sweepOrphansWorker, "worker", false, "Run continuously using the configured cron schedule")
}

func runCommand(
	name string,
	worker bool,
	scheduleResolver func(cfg *config.Config) string,
	fn func(s *service.MaintenanceService, ctx context.Context) error,
) {
	cfg, maintenanceService, cleanup := mustCreateMaintenanceService()
	defer cleanup()

	if worker {
		runWorker(name, scheduleResolver(cfg), maintenanceService, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(maintenanceService, ctx) })
}

func runWorker(
	name string,
	schedule string,
	maintenanceService *service.MaintenanceService,
	fn func(s *service.MaintenanceService, ctx context.Context) error,
) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler, err := newScheduler(name, schedule, func() {
		runJob(name, func() error { return fn(maintenanceService, ctx) })
	})
	if err != nil {
		logrus.WithError(err).WithField("job", name).Fatal("invalid worker schedule")
	}

	logrus.WithField("job", name).WithField("schedule", schedule).Info("Worker started")
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.WithField("job", name).Info("Worker shutdown requested")

	cancel()
	<-scheduler.Stop().Done()
}

// newScheduler builds a cron scheduler that skips a tick while the previous
// run of the job is still going.
func newScheduler(name, schedule string, job func()) (*cron.Cron, error) {
	logger := cron.VerbosePrintfLogger(logrus.WithField("job", name))
	scheduler := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))
	if _, err := scheduler.AddFunc(schedule, job); err != nil {
		return nil, err
	}
	return scheduler, nil
}

func mustCreateMaintenanceService() (*config.Config, *service.MaintenanceService, func()) {
	cfg := mustLoadConfig()
	db := mustOpenDB(cfg)
	store := mustCreateStore(context.Background(), cfg)

	maintenanceService := service.NewMaintenanceService(
		repository.NewPlanRepository(db),
		repository.NewProviderRepository(db),
		store,
		cfg.Storage,
		cfg.Jobs,
	)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, maintenanceService, cleanup
}

func runJob(name string, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}
