package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	"github.com/Geeth0476/Vigilant-Backend/pkg/events"
)

// completedSession builds a finished session for a device, drained of its
// domain events.
func completedSession(t *testing.T, userID, deviceID uuid.UUID) *model.ScanSession {
	t.Helper()
	s, err := model.NewScanSession(userID, deviceID, "deep")
	require.NoError(t, err)
	require.NoError(t, s.Complete(45, valueobject.RiskLevelMedium, model.TierTally{Medium: 1, Safe: 4}, 5))
	s.DomainEvents()
	return s
}

// --- Mock implementations ---

type mockDeviceRepository struct {
	resolveFunc      func(ctx context.Context, userID uuid.UUID, deviceUUID string) (uuid.UUID, error)
	registeredDevice *model.Device
	registerFunc     func(ctx context.Context, device *model.Device) error
}

func (m *mockDeviceRepository) ResolveUUID(ctx context.Context, userID uuid.UUID, deviceUUID string) (uuid.UUID, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, userID, deviceUUID)
	}
	return uuid.Nil, port.ErrDeviceNotFound
}

func (m *mockDeviceRepository) RegisterOrUpdate(ctx context.Context, device *model.Device) error {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, device)
	}
	m.registeredDevice = device
	return nil
}

type mockScanSessionRepository struct {
	createdSession     *model.ScanSession
	createFunc         func(ctx context.Context, session *model.ScanSession) error
	findForUserFunc    func(ctx context.Context, scanID, userID uuid.UUID) (*model.ScanSession, error)
	updateProgressFunc func(ctx context.Context, scanID, userID uuid.UUID, appsScanned int, totalApps *int) (bool, error)
	latestFunc         func(ctx context.Context, deviceID uuid.UUID) (*model.ScanSession, error)
	activeFunc         func(ctx context.Context, deviceID, userID uuid.UUID) (*model.ScanSession, error)
	summaryFunc        func(ctx context.Context, deviceID, userID uuid.UUID, since time.Time) (port.ScanHistorySummary, error)
}

func (m *mockScanSessionRepository) Create(ctx context.Context, session *model.ScanSession) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	m.createdSession = session
	return nil
}

func (m *mockScanSessionRepository) FindForUser(ctx context.Context, scanID, userID uuid.UUID) (*model.ScanSession, error) {
	if m.findForUserFunc != nil {
		return m.findForUserFunc(ctx, scanID, userID)
	}
	return nil, nil
}

func (m *mockScanSessionRepository) UpdateProgress(ctx context.Context, scanID, userID uuid.UUID, appsScanned int, totalApps *int) (bool, error) {
	if m.updateProgressFunc != nil {
		return m.updateProgressFunc(ctx, scanID, userID, appsScanned, totalApps)
	}
	return true, nil
}

func (m *mockScanSessionRepository) LatestCompleted(ctx context.Context, deviceID uuid.UUID) (*model.ScanSession, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx, deviceID)
	}
	return nil, nil
}

func (m *mockScanSessionRepository) ActiveForDevice(ctx context.Context, deviceID, userID uuid.UUID) (*model.ScanSession, error) {
	if m.activeFunc != nil {
		return m.activeFunc(ctx, deviceID, userID)
	}
	return nil, nil
}

func (m *mockScanSessionRepository) HistorySummary(ctx context.Context, deviceID, userID uuid.UUID, since time.Time) (port.ScanHistorySummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, deviceID, userID, since)
	}
	return port.ScanHistorySummary{}, nil
}

type mockCompletionStore struct {
	completeFunc func(ctx context.Context, cmd port.CompleteScanCommand) (*model.ScanSession, service.AggregationResult, error)
	lastCommand  port.CompleteScanCommand
}

func (m *mockCompletionStore) Complete(ctx context.Context, cmd port.CompleteScanCommand) (*model.ScanSession, service.AggregationResult, error) {
	m.lastCommand = cmd
	if m.completeFunc != nil {
		return m.completeFunc(ctx, cmd)
	}
	return nil, service.AggregationResult{}, fmt.Errorf("not configured")
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockRiskScoreRepository struct {
	findFunc func(ctx context.Context, deviceID uuid.UUID) (*model.DeviceRiskScore, error)
}

func (m *mockRiskScoreRepository) Find(ctx context.Context, deviceID uuid.UUID) (*model.DeviceRiskScore, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, deviceID)
	}
	return nil, nil
}

type mockScanResultRepository struct {
	topFunc func(ctx context.Context, deviceID uuid.UUID, limit int) ([]port.TopRiskyApp, error)
}

func (m *mockScanResultRepository) TopRiskyApps(ctx context.Context, deviceID uuid.UUID, limit int) ([]port.TopRiskyApp, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, deviceID, limit)
	}
	return nil, nil
}

type mockAlertRepository struct {
	countFunc func(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error)
}

func (m *mockAlertRepository) CountRecentForDevice(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, deviceID, since)
	}
	return 0, nil
}

type mockSignalReader struct {
	threats    int
	violations int
	threatErr  error
}

func (m *mockSignalReader) CommunityThreatCount(_ context.Context, _ uuid.UUID) (int, error) {
	return m.threats, m.threatErr
}

func (m *mockSignalReader) RecentViolationCount(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	return m.violations, nil
}
