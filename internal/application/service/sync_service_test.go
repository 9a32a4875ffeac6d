package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kipkoech/salespoint-api/internal/domain/entity"
	infrarepo "github.com/kipkoech/salespoint-api/internal/infrastructure/repository"
	"github.com/kipkoech/salespoint-api/pkg/apperror"
	"github.com/kipkoech/salespoint-api/pkg/notify"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeConnector struct {
	fetch func(ctx context.Context, limit int) (*entity.SyncStatus, error)
	retry func(ctx context.Context, saleID uint) (string, error)
}

func (f *fakeConnector) FetchSyncStatus(ctx context.Context, limit int) (*entity.SyncStatus, error) {
	if f.fetch == nil {
		return &entity.SyncStatus{FetchedAt: time.Now()}, nil
	}
	return f.fetch(ctx, limit)
}

func (f *fakeConnector) RetrySale(ctx context.Context, saleID uint) (string, error) {
	if f.retry == nil {
		return "", errors.New("unexpected retry call")
	}
	return f.retry(ctx, saleID)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestSyncService(t *testing.T, connector *fakeConnector) (*SyncService, *gorm.DB, *notify.Hub) {
	t.Helper()
	db := newServiceTestDB(t)
	hub := notify.NewHub()
	svc := NewSyncService(connector, infrarepo.NewSaleRepository(db), hub, quietLogger(), 50)
	return svc, db, hub
}

func statusWithTotal(total int) *entity.SyncStatus {
	return &entity.SyncStatus{
		Summary:   entity.SyncSummary{Total: total},
		FetchedAt: time.Now(),
	}
}

func createSyncSale(t *testing.T, db *gorm.DB, customer *entity.Customer, synced bool, syncErr *string) *entity.Sale {
	t.Helper()
	if customer != nil {
		if err := db.Create(customer).Error; err != nil {
			t.Fatalf("failed to create customer: %v", err)
		}
	}
	sale := &entity.Sale{
		UserID:        uuid.New(),
		SoldAt:        time.Now(),
		SubTotal:      1000,
		Total:         1080,
		PaymentMethod: "cash",
		ZohoSynced:    &synced,
		ZohoError:     syncErr,
	}
	if customer != nil {
		sale.CustomerID = &customer.ID
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create sale: %v", err)
	}
	return sale
}

func TestSnapshotNilBeforeFirstRefresh(t *testing.T) {
	svc, _, _ := newTestSyncService(t, &fakeConnector{})
	if svc.Snapshot() != nil {
		t.Error("snapshot should be nil before the first refresh")
	}
}

func TestRefreshInstallsSnapshot(t *testing.T) {
	connector := &fakeConnector{
		fetch: func(ctx context.Context, limit int) (*entity.SyncStatus, error) {
			if limit != 50 {
				t.Errorf("limit = %d, want 50", limit)
			}
			return statusWithTotal(10), nil
		},
	}
	svc, _, _ := newTestSyncService(t, connector)

	status, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if status.Summary.Total != 10 {
		t.Errorf("total = %d, want 10", status.Summary.Total)
	}
	if svc.Snapshot() != status {
		t.Error("snapshot should hold the refreshed status")
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	connector := &fakeConnector{
		fetch: func(ctx context.Context, limit int) (*entity.SyncStatus, error) {
			if fail.Load() {
				return nil, errors.New("connection refused")
			}
			return statusWithTotal(10), nil
		},
	}
	svc, _, hub := newTestSyncService(t, connector)

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	fail.Store(true)
	_, err := svc.Refresh(context.Background())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 502 {
		t.Fatalf("expected 502 for connector failure, got %v", err)
	}

	if snap := svc.Snapshot(); snap == nil || snap.Summary.Total != 10 {
		t.Errorf("failed refresh must keep the previous snapshot, got %+v", snap)
	}

	active := hub.Active()
	if len(active) != 1 || active[0].Severity != notify.SeverityError {
		t.Fatalf("expected one error notification, got %+v", active)
	}
	if active[0].Message != "Could not reach Zoho Books sync service" {
		t.Errorf("notification message = %q", active[0].Message)
	}
}

// A slow refresh that started before a faster one must not overwrite the
// faster one's snapshot when its response finally arrives.
func TestRefreshStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	connector := &fakeConnector{
		fetch: func(ctx context.Context, limit int) (*entity.SyncStatus, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-release
				return statusWithTotal(1), nil
			}
			return statusWithTotal(2), nil
		},
	}
	svc, _, _ := newTestSyncService(t, connector)

	done := make(chan *entity.SyncStatus)
	go func() {
		status, err := svc.Refresh(context.Background())
		if err != nil {
			t.Errorf("slow Refresh: %v", err)
		}
		done <- status
	}()

	<-started
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("fast Refresh: %v", err)
	}

	close(release)
	status := <-done

	if status == nil || status.Summary.Total != 2 {
		t.Errorf("slow refresh should return the newer snapshot, got %+v", status)
	}
	if snap := svc.Snapshot(); snap == nil || snap.Summary.Total != 2 {
		t.Errorf("stale response must not land, snapshot = %+v", snap)
	}
}

func TestRetrySaleNotFound(t *testing.T) {
	svc, _, _ := newTestSyncService(t, &fakeConnector{})

	_, err := svc.RetrySale(context.Background(), 999)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("expected 404 for unknown sale, got %v", err)
	}
}

func TestRetrySaleAlreadySynced(t *testing.T) {
	svc, db, _ := newTestSyncService(t, &fakeConnector{})
	customer := &entity.Customer{Name: "Jane Cooper", ZohoContactID: strPtr("zc-1")}
	sale := createSyncSale(t, db, customer, true, nil)

	_, err := svc.RetrySale(context.Background(), sale.ID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 {
		t.Errorf("expected 400 for an already synced sale, got %v", err)
	}
}

func TestRetrySaleWithoutZohoContact(t *testing.T) {
	svc, db, _ := newTestSyncService(t, &fakeConnector{})

	// No customer at all, then a customer the ledger does not know.
	walkIn := createSyncSale(t, db, nil, false, strPtr("sync failed"))
	unknown := createSyncSale(t, db, &entity.Customer{Name: "Cash Customer"}, false, strPtr("sync failed"))

	for _, sale := range []*entity.Sale{walkIn, unknown} {
		if _, err := svc.RetrySale(context.Background(), sale.ID); !errors.Is(err, apperror.ErrNoLedgerIdentity) {
			t.Errorf("sale %d: expected ErrNoLedgerIdentity, got %v", sale.ID, err)
		}
	}
}

func TestRetrySaleConnectorFailure(t *testing.T) {
	connector := &fakeConnector{
		retry: func(ctx context.Context, saleID uint) (string, error) {
			return "", errors.New("Zoho item not mapped")
		},
	}
	svc, db, hub := newTestSyncService(t, connector)
	customer := &entity.Customer{Name: "Jane Cooper", ZohoContactID: strPtr("zc-1")}
	sale := createSyncSale(t, db, customer, false, nil)

	_, err := svc.RetrySale(context.Background(), sale.ID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 502 {
		t.Fatalf("expected 502, got %v", err)
	}

	var stored entity.Sale
	if err := db.First(&stored, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if stored.ZohoError == nil || *stored.ZohoError != "Zoho item not mapped" {
		t.Errorf("sync error not recorded, got %v", stored.ZohoError)
	}
	if stored.ZohoSynced != nil && *stored.ZohoSynced {
		t.Error("failed retry must not mark the sale synced")
	}

	active := hub.Active()
	if len(active) != 1 || active[0].Severity != notify.SeverityError {
		t.Errorf("expected one error notification, got %+v", active)
	}
}

func TestRetrySaleSuccess(t *testing.T) {
	connector := &fakeConnector{
		fetch: func(ctx context.Context, limit int) (*entity.SyncStatus, error) {
			return statusWithTotal(5), nil
		},
		retry: func(ctx context.Context, saleID uint) (string, error) {
			return "SR-0042", nil
		},
	}
	svc, db, hub := newTestSyncService(t, connector)
	customer := &entity.Customer{Name: "Jane Cooper", ZohoContactID: strPtr("zc-1")}
	sale := createSyncSale(t, db, customer, false, strPtr("previous failure"))

	status, err := svc.RetrySale(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("RetrySale: %v", err)
	}
	if status == nil || status.Summary.Total != 5 {
		t.Errorf("successful retry should return a refreshed snapshot, got %+v", status)
	}

	var stored entity.Sale
	if err := db.First(&stored, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if stored.ZohoSynced == nil || !*stored.ZohoSynced {
		t.Error("sale should be marked synced")
	}
	if stored.ZohoReceiptNumber == nil || *stored.ZohoReceiptNumber != "SR-0042" {
		t.Errorf("ledger receipt number = %v, want SR-0042", stored.ZohoReceiptNumber)
	}
	if stored.ZohoError != nil {
		t.Errorf("previous sync error should be cleared, got %v", stored.ZohoError)
	}

	active := hub.Active()
	if len(active) != 1 || active[0].Severity != notify.SeveritySuccess {
		t.Fatalf("expected one success notification, got %+v", active)
	}
	if active[0].Message != "Sale synced to Zoho Books" {
		t.Errorf("notification message = %q", active[0].Message)
	}
}

// A retry that reaches the ledger but whose follow-up refresh fails is
// still a success: the outcome is persisted and no error surfaces.
func TestRetrySaleSuccessWithFailedRefresh(t *testing.T) {
	connector := &fakeConnector{
		fetch: func(ctx context.Context, limit int) (*entity.SyncStatus, error) {
			return nil, errors.New("connection refused")
		},
		retry: func(ctx context.Context, saleID uint) (string, error) {
			return "SR-0042", nil
		},
	}
	svc, db, hub := newTestSyncService(t, connector)
	customer := &entity.Customer{Name: "Jane Cooper", ZohoContactID: strPtr("zc-1")}
	sale := createSyncSale(t, db, customer, false, strPtr("previous failure"))

	status, err := svc.RetrySale(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("retry succeeded, refresh failure must not surface: %v", err)
	}
	if status != nil {
		t.Errorf("no snapshot existed before the retry, got %+v", status)
	}

	var stored entity.Sale
	if err := db.First(&stored, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if stored.ZohoSynced == nil || !*stored.ZohoSynced {
		t.Error("sale should be marked synced despite the failed refresh")
	}
	if stored.ZohoReceiptNumber == nil || *stored.ZohoReceiptNumber != "SR-0042" {
		t.Errorf("ledger receipt number = %v, want SR-0042", stored.ZohoReceiptNumber)
	}

	// Both outcomes are reported: the sync success and the refresh failure.
	bySeverity := map[notify.Severity]int{}
	for _, n := range hub.Active() {
		bySeverity[n.Severity]++
	}
	if bySeverity[notify.SeveritySuccess] != 1 || bySeverity[notify.SeverityError] != 1 {
		t.Errorf("notifications by severity = %v, want one success and one error", bySeverity)
	}
}

func TestRetrySaleSingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	connector := &fakeConnector{
		retry: func(ctx context.Context, saleID uint) (string, error) {
			close(entered)
			<-release
			return "SR-0001", nil
		},
	}
	svc, db, _ := newTestSyncService(t, connector)
	customer := &entity.Customer{Name: "Jane Cooper", ZohoContactID: strPtr("zc-1")}
	sale := createSyncSale(t, db, customer, false, strPtr("sync failed"))

	done := make(chan error)
	go func() {
		_, err := svc.RetrySale(context.Background(), sale.ID)
		done <- err
	}()

	<-entered
	if _, err := svc.RetrySale(context.Background(), sale.ID); !errors.Is(err, apperror.ErrRetryInFlight) {
		t.Errorf("second retry while one is pending: expected ErrRetryInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first retry: %v", err)
	}

	// The slot is released once the first retry finishes; the sale is now
	// synced so the next attempt fails for that reason, not the guard.
	_, err := svc.RetrySale(context.Background(), sale.ID)
	if errors.Is(err, apperror.ErrRetryInFlight) {
		t.Error("in-flight guard not released after retry completed")
	}
}
