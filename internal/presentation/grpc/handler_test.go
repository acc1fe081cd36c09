package grpc

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/usecase"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	"github.com/Geeth0476/Vigilant-Backend/pkg/auth"
	"github.com/Geeth0476/Vigilant-Backend/pkg/events"
)

// --- Mock implementations ---

type mockDeviceRepo struct {
	deviceID uuid.UUID
	known    bool
}

func (m *mockDeviceRepo) ResolveUUID(_ context.Context, _ uuid.UUID, _ string) (uuid.UUID, error) {
	if !m.known {
		return uuid.Nil, port.ErrDeviceNotFound
	}
	return m.deviceID, nil
}

func (m *mockDeviceRepo) RegisterOrUpdate(_ context.Context, device *model.Device) error {
	m.deviceID = device.ID
	m.known = true
	return nil
}

type mockSessionRepo struct {
	session *model.ScanSession
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.ScanSession) error {
	m.session = session
	return nil
}

func (m *mockSessionRepo) FindForUser(_ context.Context, scanID, userID uuid.UUID) (*model.ScanSession, error) {
	if m.session == nil || m.session.ID() != scanID || m.session.UserID() != userID {
		return nil, nil
	}
	return m.session, nil
}

func (m *mockSessionRepo) UpdateProgress(_ context.Context, _, _ uuid.UUID, _ int, _ *int) (bool, error) {
	return m.session != nil, nil
}

func (m *mockSessionRepo) LatestCompleted(_ context.Context, _ uuid.UUID) (*model.ScanSession, error) {
	if m.session == nil || !m.session.Status().IsTerminal() {
		return nil, nil
	}
	return m.session, nil
}

func (m *mockSessionRepo) ActiveForDevice(_ context.Context, _, _ uuid.UUID) (*model.ScanSession, error) {
	if m.session == nil || m.session.Status().IsTerminal() {
		return nil, nil
	}
	return m.session, nil
}

func (m *mockSessionRepo) HistorySummary(_ context.Context, _, _ uuid.UUID, _ time.Time) (port.ScanHistorySummary, error) {
	return port.ScanHistorySummary{}, nil
}

type mockStore struct {
	err error
}

func (m *mockStore) Complete(_ context.Context, cmd port.CompleteScanCommand) (*model.ScanSession, service.AggregationResult, error) {
	if m.err != nil {
		return nil, service.AggregationResult{}, m.err
	}
	agg := service.AggregationResult{
		Score:            82,
		Level:            valueobject.RiskLevelHigh,
		CommunityThreats: 2,
		RecentViolations: 6,
	}
	session, _ := model.NewScanSession(cmd.UserID, uuid.New(), "quick")
	if err := session.Complete(agg.Score, agg.Level, cmd.Tally, cmd.AppCount); err != nil {
		return nil, service.AggregationResult{}, err
	}
	return session, agg, nil
}

type mockPublisher struct{}

func (m *mockPublisher) Publish(_ context.Context, _ ...events.DomainEvent) error { return nil }

type mockScoreRepo struct{}

func (m *mockScoreRepo) Find(_ context.Context, _ uuid.UUID) (*model.DeviceRiskScore, error) {
	return nil, nil
}

type mockResultRepo struct{}

func (m *mockResultRepo) TopRiskyApps(_ context.Context, _ uuid.UUID, _ int) ([]port.TopRiskyApp, error) {
	return nil, nil
}

type mockAlertRepo struct{}

func (m *mockAlertRepo) CountRecentForDevice(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	return 0, nil
}

// --- Helpers ---

func contextWithUser(userID uuid.UUID) context.Context {
	claims := &auth.Claims{
		UserID: userID,
		Roles:  []string{auth.RoleUser},
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type handlerFixture struct {
	handler  *ScanServiceHandler
	devices  *mockDeviceRepo
	sessions *mockSessionRepo
	store    *mockStore
}

func buildTestHandler() *handlerFixture {
	devices := &mockDeviceRepo{}
	sessions := &mockSessionRepo{}
	store := &mockStore{}
	logger := testLogger()

	handler := NewScanServiceHandler(
		usecase.NewStartScan(devices, sessions),
		usecase.NewUpdateProgress(sessions),
		usecase.NewCompleteScan(store, &mockPublisher{}, logger),
		usecase.NewGetScanStatus(sessions),
		usecase.NewGetLatestScan(devices, sessions),
		usecase.NewGetActiveScan(devices, sessions),
		usecase.NewGetDashboard(devices, sessions, &mockScoreRepo{}, &mockResultRepo{}, &mockAlertRepo{}),
		logger,
	)
	return &handlerFixture{handler: handler, devices: devices, sessions: sessions, store: store}
}

// --- Tests ---

func TestScanServiceHandler_StartScan(t *testing.T) {
	t.Run("starts a scan", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		resp, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{
			DeviceUuid: "device-123",
			ScanMode:   "deep",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Scan)
		assert.Equal(t, "RUNNING", resp.Scan.Status)
		assert.Equal(t, "deep", resp.Scan.ScanMode)
		assert.NotEmpty(t, resp.Scan.ScanId)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.StartScan(context.Background(), &StartScanRequest{DeviceUuid: "device-123"})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("missing device uuid maps to invalid argument", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.StartScan(contextWithUser(uuid.New()), &StartScanRequest{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestScanServiceHandler_UpdateProgress(t *testing.T) {
	t.Run("records progress", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		resp, err := f.handler.UpdateProgress(contextWithUser(userID), &UpdateProgressRequest{
			ScanId:      started.Scan.ScanId,
			AppsScanned: 42,
		})

		require.NoError(t, err)
		assert.Equal(t, int32(42), resp.AppsScanned)
	})

	t.Run("malformed scan id maps to invalid argument", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.UpdateProgress(contextWithUser(uuid.New()), &UpdateProgressRequest{
			ScanId: "not-a-uuid",
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown scan maps to not found", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.UpdateProgress(contextWithUser(uuid.New()), &UpdateProgressRequest{
			ScanId: uuid.NewString(),
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestScanServiceHandler_CompleteScan(t *testing.T) {
	t.Run("returns the aggregated assessment", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()
		score := int32(80)

		resp, err := f.handler.CompleteScan(contextWithUser(userID), &CompleteScanRequest{
			ScanId:    uuid.NewString(),
			RiskLevel: "MEDIUM",
			Findings: []*AppFindingMsg{
				{PackageName: "com.bad.app", AppName: "Bad", RiskScore: &score},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Scan)
		assert.Equal(t, "COMPLETED", resp.Scan.Status)
		assert.Equal(t, int32(82), resp.Scan.RiskScore)
		assert.Equal(t, "HIGH", resp.Scan.RiskLevel)
		assert.Equal(t, int32(2), resp.CommunityThreats)
		assert.Equal(t, int32(6), resp.RecentViolations)
	})

	t.Run("double completion maps to already exists", func(t *testing.T) {
		f := buildTestHandler()
		f.store.err = model.ErrScanAlreadyCompleted

		_, err := f.handler.CompleteScan(contextWithUser(uuid.New()), &CompleteScanRequest{
			ScanId: uuid.NewString(),
		})
		assert.Equal(t, codes.AlreadyExists, status.Code(err))
	})

	t.Run("foreign scan maps to permission denied", func(t *testing.T) {
		f := buildTestHandler()
		f.store.err = port.ErrScanForbidden

		_, err := f.handler.CompleteScan(contextWithUser(uuid.New()), &CompleteScanRequest{
			ScanId: uuid.NewString(),
		})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("unknown scan maps to not found", func(t *testing.T) {
		f := buildTestHandler()
		f.store.err = port.ErrScanNotFound

		_, err := f.handler.CompleteScan(contextWithUser(uuid.New()), &CompleteScanRequest{
			ScanId: uuid.NewString(),
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestScanServiceHandler_GetScanStatus(t *testing.T) {
	t.Run("returns the session", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		resp, err := f.handler.GetScanStatus(contextWithUser(userID), &GetScanStatusRequest{
			ScanId: started.Scan.ScanId,
		})

		require.NoError(t, err)
		assert.Equal(t, started.Scan.ScanId, resp.Scan.ScanId)
		assert.Equal(t, "RUNNING", resp.Scan.Status)
	})

	t.Run("another user's scan maps to not found", func(t *testing.T) {
		f := buildTestHandler()
		owner := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(owner), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		_, err = f.handler.GetScanStatus(contextWithUser(uuid.New()), &GetScanStatusRequest{
			ScanId: started.Scan.ScanId,
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestScanServiceHandler_GetLatestScan(t *testing.T) {
	t.Run("no completed scan yields an absent scan", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		_, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		resp, err := f.handler.GetLatestScan(contextWithUser(userID), &DeviceRequest{DeviceUuid: "device-123"})

		require.NoError(t, err, "a device that never completed a scan is a normal answer")
		assert.Nil(t, resp.Scan)
	})

	t.Run("unknown device maps to not found", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.GetLatestScan(contextWithUser(uuid.New()), &DeviceRequest{DeviceUuid: "ghost"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestScanServiceHandler_GetActiveScan(t *testing.T) {
	t.Run("returns the running scan", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		resp, err := f.handler.GetActiveScan(contextWithUser(userID), &DeviceRequest{DeviceUuid: "device-123"})

		require.NoError(t, err)
		require.NotNil(t, resp.Scan)
		assert.Equal(t, started.Scan.ScanId, resp.Scan.ScanId)
	})

	t.Run("nothing running yields an absent scan", func(t *testing.T) {
		f := buildTestHandler()
		f.devices.known = true
		f.devices.deviceID = uuid.New()

		resp, err := f.handler.GetActiveScan(contextWithUser(uuid.New()), &DeviceRequest{DeviceUuid: "device-123"})

		require.NoError(t, err, "an idle device is the usual polling answer")
		assert.Nil(t, resp.Scan)
	})
}

func TestScanServiceHandler_GetDashboard(t *testing.T) {
	t.Run("returns a safe overview for a fresh device", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		_, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		resp, err := f.handler.GetDashboard(contextWithUser(userID), &DeviceRequest{DeviceUuid: "device-123"})

		require.NoError(t, err)
		assert.Equal(t, "SAFE", resp.RiskLevel)
		assert.Equal(t, int32(0), resp.RiskScore)
		require.NotNil(t, resp.ActiveScan)
		assert.Equal(t, "RUNNING", resp.ActiveScan.Status)
	})

	t.Run("unknown device maps to not found", func(t *testing.T) {
		f := buildTestHandler()

		_, err := f.handler.GetDashboard(contextWithUser(uuid.New()), &DeviceRequest{DeviceUuid: "ghost"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}
