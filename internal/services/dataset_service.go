package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"campaignpulse/internal/dataprocessing"
	apperrors "campaignpulse/internal/errors"
	"campaignpulse/internal/files"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/validation"
	"campaignpulse/pkg/contracts/domain"
)

// DatasetHub receives dataset lifecycle events for connected dashboards.
// *websocket.Hub satisfies it.
type DatasetHub interface {
	BroadcastDatasetReloading(path string)
	BroadcastDatasetReloaded(info interface{})
	BroadcastError(code, message string)
}

// DatasetService owns the loaded dataset snapshot. Reads see a consistent
// snapshot; reloads swap it atomically.
type DatasetService struct {
	path           string
	reloadDebounce time.Duration
	watch          bool

	discovery *files.Discovery
	loader    *dataprocessing.Loader
	validator *validation.FileValidator
	hub       DatasetHub
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger

	mu      sync.RWMutex
	dataset *domain.Dataset

	reloading atomic.Bool

	watcher   *fsnotify.Watcher
	watchStop chan struct{}
}

// DatasetOption configures optional service dependencies.
type DatasetOption func(*DatasetService)

// WithDatasetHub wires a broadcast hub for reload notifications.
func WithDatasetHub(hub DatasetHub) DatasetOption {
	return func(s *DatasetService) { s.hub = hub }
}

// WithDatasetMetrics wires business metrics for load instrumentation.
func WithDatasetMetrics(metrics *infrastructure.BusinessMetrics) DatasetOption {
	return func(s *DatasetService) { s.metrics = metrics }
}

// NewDatasetService creates a dataset service reading from path, which may
// be a CSV file or a directory of CSVs.
func NewDatasetService(path string, reloadDebounce time.Duration, watch bool, logger *slog.Logger, opts ...DatasetOption) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dataset_service"))

	s := &DatasetService{
		path:           path,
		reloadDebounce: reloadDebounce,
		watch:          watch,
		discovery:      files.NewDiscovery(""),
		loader:         dataprocessing.NewLoader(logger),
		validator:      validation.NewFileValidator(logger),
		logger:         logger,
		watchStop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load resolves the dataset path, parses the CSV and installs the result
// as the current snapshot.
func (s *DatasetService) Load(ctx context.Context) (domain.DatasetInfo, error) {
	start := time.Now()

	resolved, err := s.discovery.ResolveDataset(s.path)
	if err != nil {
		infrastructure.RecordDatasetLoad(ctx, s.metrics, s.path, 0, 0, time.Since(start), err)
		return domain.DatasetInfo{}, err
	}

	if err := s.validator.ValidateCSVFile(resolved); err != nil {
		infrastructure.RecordDatasetLoad(ctx, s.metrics, resolved, 0, 0, time.Since(start), err)
		return domain.DatasetInfo{}, err
	}

	dataset, err := s.loader.Load(ctx, resolved)
	if err != nil {
		infrastructure.RecordDatasetLoad(ctx, s.metrics, resolved, 0, 0, time.Since(start), err)
		return domain.DatasetInfo{}, err
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	infrastructure.RecordDatasetLoad(ctx, s.metrics, resolved, len(dataset.Customers), dataset.SkippedRows, time.Since(start), nil)

	info := datasetInfo(dataset)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", info.Path),
		slog.Int("rows", info.Rows),
		slog.Int("skipped_rows", info.SkippedRows),
		slog.Duration("duration", time.Since(start)))
	return info, nil
}

// Reload re-reads the dataset from disk. Concurrent reloads are rejected
// with ErrReloadInProgress.
func (s *DatasetService) Reload(ctx context.Context) (domain.DatasetInfo, error) {
	if !s.reloading.CompareAndSwap(false, true) {
		return domain.DatasetInfo{}, apperrors.ErrReloadInProgress
	}
	defer s.reloading.Store(false)

	if s.hub != nil {
		s.hub.BroadcastDatasetReloading(s.path)
	}

	info, err := s.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset reload failed",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		if s.hub != nil {
			s.hub.BroadcastError("DATASET_RELOAD_FAILED", err.Error())
		}
		return domain.DatasetInfo{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastDatasetReloaded(info)
	}
	return info, nil
}

// Dataset returns the current snapshot, or ErrDatasetNotLoaded before the
// first successful Load.
func (s *DatasetService) Dataset() (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, apperrors.ErrDatasetNotLoaded
	}
	return s.dataset, nil
}

// Customers returns the rows of the current snapshot.
func (s *DatasetService) Customers() ([]domain.Customer, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return dataset.Customers, nil
}

// Info returns metadata about the current snapshot.
func (s *DatasetService) Info() (domain.DatasetInfo, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return domain.DatasetInfo{}, err
	}
	return datasetInfo(dataset), nil
}

// StartWatching begins watching the dataset file for changes and reloads
// after a debounce window. It is a no-op when watching is disabled.
func (s *DatasetService) StartWatching(ctx context.Context) error {
	if !s.watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the containing directory: editors replace files, which drops
	// the watch on the file itself.
	watchDir := s.path
	if resolved, err := s.discovery.ResolveDataset(s.path); err == nil {
		watchDir = filepath.Dir(resolved)
	}
	if err := watcher.Add(watchDir); err != nil {
		watcher.Close()
		s.watcher = nil
		return err
	}

	s.logger.Info("watching dataset for changes",
		slog.String("dir", watchDir),
		slog.Duration("debounce", s.reloadDebounce))

	go s.watchLoop(ctx)
	return nil
}

func (s *DatasetService) watchLoop(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.watchStop:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}

			// Restart the debounce window on every event burst.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.reloadDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("dataset watcher error", slog.String("error", err.Error()))

		case <-pending:
			if _, err := s.Reload(ctx); err != nil && err != apperrors.ErrReloadInProgress {
				s.logger.Warn("watched reload failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Close stops the file watcher.
func (s *DatasetService) Close() error {
	close(s.watchStop)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func datasetInfo(dataset *domain.Dataset) domain.DatasetInfo {
	return domain.DatasetInfo{
		Path:        dataset.SourcePath,
		Rows:        len(dataset.Customers),
		SkippedRows: dataset.SkippedRows,
		LoadedAt:    dataset.LoadedAt,
		Educations:  dataset.Educations(),
		Years:       dataset.Years(),
	}
}
