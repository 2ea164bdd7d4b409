package collecting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func date(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		days     int
		expected []collecting.DateRange
	}{
		{
			name:  "Intervalo de um dia",
			start: "2026-01-20", end: "2026-01-20", days: 7,
			expected: []collecting.DateRange{{Start: date("2026-01-20"), End: date("2026-01-20")}},
		},
		{
			name:  "Última janela é truncada no fim do intervalo",
			start: "2026-01-01", end: "2026-01-10", days: 4,
			expected: []collecting.DateRange{
				{Start: date("2026-01-01"), End: date("2026-01-04")},
				{Start: date("2026-01-05"), End: date("2026-01-08")},
				{Start: date("2026-01-09"), End: date("2026-01-10")},
			},
		},
		{
			name:  "Dias não positivos viram janelas diárias",
			start: "2026-01-01", end: "2026-01-02", days: 0,
			expected: []collecting.DateRange{
				{Start: date("2026-01-01"), End: date("2026-01-01")},
				{Start: date("2026-01-02"), End: date("2026-01-02")},
			},
		},
		{
			name:  "Início após o fim não gera chunks",
			start: "2026-01-05", end: "2026-01-01", days: 3,
			expected: []collecting.DateRange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collecting.SplitRange(date(tt.start), date(tt.end), tt.days))
		})
	}
}

func TestDays(t *testing.T) {
	days := collecting.Days(date("2026-01-30"), date("2026-02-02"))

	assert.Equal(t, []time.Time{date("2026-01-30"), date("2026-01-31"), date("2026-02-01"), date("2026-02-02")}, days)
}

func TestRunChunks(t *testing.T) {
	plan := collecting.PlanChunks(
		[]domain.CollectionType{domain.CollectionTypeAds},
		func(domain.CollectionType) []collecting.DateRange {
			return collecting.SplitRange(date("2026-01-01"), date("2026-01-05"), 1)
		},
	)
	require.Len(t, plan, 5)

	t.Run("Falha de chunk não interrompe os demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := mocks.NewMockTracker(ctrl)

		boom := errors.New("boom")
		failing := map[string]bool{"2026-01-02": true, "2026-01-03": true, "2026-01-05": true}

		tracker.EXPECT().AddTotal(gomock.Any(), 5)
		tracker.EXPECT().ChunkSucceeded(gomock.Any(), 10).Times(2)
		tracker.EXPECT().ChunkFailed(gomock.Any(), gomock.Any()).Times(3)

		visited := make([]string, 0)
		result, err := collecting.RunChunks(context.Background(), collecting.Request{Tracker: tracker}, plan, 0,
			func(_ context.Context, chunk collecting.Chunk) (int, error) {
				day := chunk.Range.Start.Format(time.DateOnly)
				visited = append(visited, day)
				if failing[day] {
					return 0, boom
				}
				return 10, nil
			})

		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05"}, visited)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 2, result.Completed)
		assert.Equal(t, 3, result.Failed)
		assert.Equal(t, 20, result.RowsWritten)
		assert.ErrorIs(t, result.FirstError, boom)
		assert.True(t, result.Valid())
		assert.Equal(t, domain.JobStatusPartial, result.DeriveStatus())
		assert.Equal(t, "3 of 5 chunks failed: boom", result.Summary())
	})

	t.Run("Contexto cancelado para o laço sem violar os contadores", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		result, err := collecting.RunChunks(ctx, collecting.Request{}, plan, 0,
			func(context.Context, collecting.Chunk) (int, error) {
				calls++
				if calls == 2 {
					cancel()
				}
				return 1, nil
			})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 2, result.Completed)
		assert.True(t, result.Valid())
	})
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		progress domain.ChunkProgress
		expected domain.JobStatus
	}{
		{domain.ChunkProgress{Total: 5, Completed: 5}, domain.JobStatusCompleted},
		{domain.ChunkProgress{Total: 0}, domain.JobStatusCompleted},
		{domain.ChunkProgress{Total: 5, Completed: 2, Failed: 3}, domain.JobStatusPartial},
		{domain.ChunkProgress{Total: 5, Failed: 5}, domain.JobStatusFailed},
		{domain.ChunkProgress{Total: 5, Completed: 3}, domain.JobStatusPartial},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.progress.DeriveStatus(), "%+v", tt.progress)
	}
}
