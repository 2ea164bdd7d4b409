package triggering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/lock"
	repomocks "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository/mocks"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	collectingmocks "github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeExecutor struct {
	requests []domain.NewJobRequest
	failFor  map[string]bool
}

func (f *fakeExecutor) ExecuteJob(_ context.Context, req domain.NewJobRequest) (*domain.CollectionJob, error) {
	f.requests = append(f.requests, req)
	if f.failFor[req.IntegrationID] {
		return nil, errors.New("storage write error")
	}
	return &domain.CollectionJob{ID: "job-" + req.IntegrationID, Status: domain.JobStatusCompleted}, nil
}

func newService(t *testing.T, now time.Time, executor JobExecutor) (*Service, *repomocks.MockIntegrationRepository, *lock.LocalLocker) {
	t.Helper()

	ctrl := gomock.NewController(t)
	integrations := repomocks.NewMockIntegrationRepository(ctrl)

	collector := collectingmocks.NewMockCollector(ctrl)
	collector.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()
	collector.EXPECT().Supports(gomock.Any()).DoAndReturn(func(ct domain.CollectionType) bool {
		return ct != domain.CollectionTypeCreatives
	}).AnyTimes()

	locker := lock.NewLocalLocker()
	service := NewService(config.DailyTrigger{}, integrations, collecting.NewRegistry(collector), executor, locker)
	service.now = func() time.Time { return now }

	return service, integrations, locker
}

func TestTrigger_TwoMetaIntegrations(t *testing.T) {
	// 2026-01-20 16:30 UTC já é 2026-01-21 01:30 em KST
	now := time.Date(2026, 1, 20, 16, 30, 0, 0, time.UTC)
	executor := &fakeExecutor{}
	service, integrations, _ := newService(t, now, executor)

	integrations.EXPECT().ListCollectable(gomock.Any(), domain.PlatformMeta).Return([]*domain.Integration{
		{ID: "m1", Platform: domain.PlatformMeta},
		{ID: "m2", Platform: domain.PlatformMeta},
	}, nil)

	summary, err := service.Trigger(context.Background(), domain.PlatformMeta, domain.CollectionTypeAds)

	require.NoError(t, err)
	assert.Equal(t, &Summary{
		Platform:       domain.PlatformMeta,
		CollectionType: domain.CollectionTypeAds,
		Date:           "2026-01-20",
		Total:          2,
		Processed:      2,
	}, summary)

	require.Len(t, executor.requests, 2)
	expectedDay := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2"} {
		req := executor.requests[i]
		assert.Equal(t, id, req.IntegrationID)
		assert.Equal(t, domain.JobModeDaily, req.Mode)
		assert.Equal(t, domain.CollectionTypeAds, req.CollectionType)
		assert.Equal(t, expectedDay, req.StartDate)
		assert.Equal(t, expectedDay, req.EndDate)
	}
}

func TestTrigger_ContinuesAfterFailure(t *testing.T) {
	now := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	executor := &fakeExecutor{failFor: map[string]bool{"m1": true}}
	service, integrations, _ := newService(t, now, executor)

	integrations.EXPECT().ListCollectable(gomock.Any(), domain.PlatformMeta).Return([]*domain.Integration{
		{ID: "m1"}, {ID: "m2"}, {ID: "m3"},
	}, nil)

	summary, err := service.Trigger(context.Background(), domain.PlatformMeta, domain.CollectionTypeDaily)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Processed)
	assert.Len(t, executor.requests, 3)
}

func TestTrigger_RejectsUnsupportedType(t *testing.T) {
	service, _, _ := newService(t, time.Now(), &fakeExecutor{})

	_, err := service.Trigger(context.Background(), domain.PlatformMeta, domain.CollectionTypeCreatives)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.Trigger(context.Background(), domain.PlatformNaver, domain.CollectionTypeAds)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCollection)
}

func TestTrigger_AlreadyRunning(t *testing.T) {
	now := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	service, _, locker := newService(t, now, &fakeExecutor{})

	_, err := locker.TryLock(context.Background(), "collection:daily-trigger:Meta:ads:2026-01-20", time.Minute)
	require.NoError(t, err)

	_, err = service.Trigger(context.Background(), domain.PlatformMeta, domain.CollectionTypeAds)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}
