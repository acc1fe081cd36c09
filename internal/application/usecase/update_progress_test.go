package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/application/usecase"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

func runningSession(t *testing.T, userID uuid.UUID) *model.ScanSession {
	t.Helper()
	s, err := model.NewScanSession(userID, uuid.New(), "quick")
	require.NoError(t, err)
	return s
}

func TestUpdateProgress_Execute(t *testing.T) {
	t.Run("records progress on a running scan", func(t *testing.T) {
		userID := uuid.New()
		session := runningSession(t, userID)
		sessions := &mockScanSessionRepository{
			findForUserFunc: func(_ context.Context, scanID, uid uuid.UUID) (*model.ScanSession, error) {
				assert.Equal(t, session.ID(), scanID)
				assert.Equal(t, userID, uid)
				return session, nil
			},
		}

		uc := usecase.NewUpdateProgress(sessions)
		total := 150
		resp, err := uc.Execute(context.Background(), dto.UpdateProgressRequest{
			UserID:      userID,
			ScanID:      session.ID(),
			AppsScanned: 42,
			TotalApps:   &total,
		})

		require.NoError(t, err)
		assert.Equal(t, session.ID(), resp.ScanID)
		assert.Equal(t, 42, resp.AppsScanned)
		assert.Equal(t, "RUNNING", resp.Status)
	})

	t.Run("unknown scan reads as not found", func(t *testing.T) {
		uc := usecase.NewUpdateProgress(&mockScanSessionRepository{})
		_, err := uc.Execute(context.Background(), dto.UpdateProgressRequest{
			UserID:      uuid.New(),
			ScanID:      uuid.New(),
			AppsScanned: 1,
		})

		assert.ErrorIs(t, err, port.ErrScanNotFound)
	})

	t.Run("completed scan rejects further progress", func(t *testing.T) {
		userID := uuid.New()
		session := runningSession(t, userID)
		require.NoError(t, session.Complete(20, valueobject.RiskLevelLow, model.TierTally{Safe: 1}, 1))

		sessions := &mockScanSessionRepository{
			findForUserFunc: func(_ context.Context, _, _ uuid.UUID) (*model.ScanSession, error) {
				return session, nil
			},
		}

		uc := usecase.NewUpdateProgress(sessions)
		_, err := uc.Execute(context.Background(), dto.UpdateProgressRequest{
			UserID:      userID,
			ScanID:      session.ID(),
			AppsScanned: 10,
		})

		assert.ErrorIs(t, err, model.ErrScanAlreadyCompleted)
	})

	t.Run("rejects negative counters before touching the store", func(t *testing.T) {
		uc := usecase.NewUpdateProgress(&mockScanSessionRepository{
			findForUserFunc: func(_ context.Context, _, _ uuid.UUID) (*model.ScanSession, error) {
				t.Fatal("repository should not be reached")
				return nil, nil
			},
		})

		_, err := uc.Execute(context.Background(), dto.UpdateProgressRequest{
			UserID:      uuid.New(),
			ScanID:      uuid.New(),
			AppsScanned: -1,
		})

		var vErr *dto.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
