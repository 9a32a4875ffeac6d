package service

import (
	"context"
	"sync"

	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	"github.com/kipkoech/salespoint-api/internal/domain/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/notify"
	"github.com/sirupsen/logrus"
)

// SyncConnector is the Zoho Books connector surface the sync service needs.
type SyncConnector interface {
	FetchSyncStatus(ctx context.Context, limit int) (*entity.SyncStatus, error)
	RetrySale(ctx context.Context, saleID uint) (string, error)
}

// SyncService reconciles recent sales against the Zoho Books ledger. It
// holds one snapshot at a time; every refresh replaces it wholesale. Refresh
// responses can arrive out of order, so each refresh is tagged with a
// sequence number taken when it starts and a response only lands if no
// later-started refresh has landed first.
type SyncService struct {
	connector SyncConnector
	saleRepo  repository.SaleRepository
	notifier  *notify.Hub
	logger    *logrus.Logger
	limit     int

	mu         sync.Mutex
	nextSeq    uint64
	appliedSeq uint64
	snapshot   *entity.SyncStatus

	inflight map[uint]struct{} // sale IDs with a retry in progress
}

// NewSyncService creates a new sync service
func NewSyncService(
	connector SyncConnector,
	saleRepo repository.SaleRepository,
	notifier *notify.Hub,
	logger *logrus.Logger,
	limit int,
) *SyncService {
	if limit <= 0 {
		limit = 50
	}
	return &SyncService{
		connector: connector,
		saleRepo:  saleRepo,
		notifier:  notifier,
		logger:    logger,
		limit:     limit,
		inflight:  make(map[uint]struct{}),
	}
}

// Snapshot returns the current sync snapshot, or nil before the first
// successful refresh.
func (s *SyncService) Snapshot() *entity.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Refresh fetches a fresh snapshot from the connector and installs it.
// A response from an older refresh never overwrites one from a newer
// refresh; the stale response is discarded and the newer snapshot is
// returned instead. Connector failures keep the previous snapshot intact.
func (s *SyncService) Refresh(ctx context.Context) (*entity.SyncStatus, error) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	status, err := s.connector.FetchSyncStatus(ctx, s.limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch Zoho Books sync status")
		s.notifier.Error("Could not reach Zoho Books sync service")
		return nil, apperror.NewBadGatewayError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.appliedSeq {
		s.appliedSeq = seq
		s.snapshot = status
	}
	return s.snapshot, nil
}

// RetrySale pushes one failed sale to the ledger again. At most one retry
// per sale can be in flight; a second request while the first is pending is
// rejected. Sales whose customer has no Zoho Books contact cannot be
// retried at all. A successful retry records the ledger's receipt number
// locally and refreshes the whole snapshot.
func (s *SyncService) RetrySale(ctx context.Context, saleID uint) (*entity.SyncStatus, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.ZohoSynced != nil && *sale.ZohoSynced {
		return nil, apperror.NewBadRequestError("Sale is already synced to Zoho Books")
	}
	if sale.Customer == nil || !sale.Customer.HasZohoContact() {
		return nil, apperror.ErrNoLedgerIdentity
	}

	s.mu.Lock()
	if _, busy := s.inflight[saleID]; busy {
		s.mu.Unlock()
		return nil, apperror.ErrRetryInFlight
	}
	s.inflight[saleID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, saleID)
		s.mu.Unlock()
	}()

	receiptNumber, err := s.connector.RetrySale(ctx, saleID)
	if err != nil {
		msg := err.Error()
		if dbErr := s.saleRepo.UpdateSyncResult(ctx, saleID, false, nil, &msg); dbErr != nil {
			s.logger.WithError(dbErr).WithField("sale_id", saleID).
				Error("failed to record sync error")
		}
		s.logger.WithError(err).WithField("sale_id", saleID).
			Error("Zoho Books retry failed")
		s.notifier.Error(msg)
		return nil, apperror.NewBadGatewayError(msg)
	}

	if dbErr := s.saleRepo.UpdateSyncResult(ctx, saleID, true, &receiptNumber, nil); dbErr != nil {
		s.logger.WithError(dbErr).WithField("sale_id", saleID).
			Error("failed to record sync success")
	}
	s.notifier.Success("Sale synced to Zoho Books")

	// The retry succeeded and is recorded; a failed follow-up refresh is
	// not a retry failure. The previous snapshot stands until the next
	// successful refresh.
	status, err := s.Refresh(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("sale_id", saleID).
			Warn("sale synced but snapshot refresh failed")
		return s.Snapshot(), nil
	}
	return status, nil
}
