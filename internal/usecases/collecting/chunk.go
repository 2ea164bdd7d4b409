package collecting

import (
	"context"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Chunk é uma unidade de coleta: um tipo de dado sobre um intervalo de datas
type Chunk struct {
	Kind  domain.CollectionType
	Range DateRange
}

type ChunkFunc func(ctx context.Context, chunk Chunk) (int, error)

// SplitRange divide [start, end] em janelas de até days dias, em ordem crescente
func SplitRange(start, end time.Time, days int) []DateRange {
	if days <= 0 {
		days = 1
	}

	start = dateOf(start)
	end = dateOf(end)

	ranges := make([]DateRange, 0)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, days) {
		chunkEnd := cursor.AddDate(0, 0, days-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		ranges = append(ranges, DateRange{Start: cursor, End: chunkEnd})
	}

	return ranges
}

// Days lista cada data de [start, end]
func Days(start, end time.Time) []time.Time {
	ranges := SplitRange(start, end, 1)
	days := make([]time.Time, len(ranges))
	for i, r := range ranges {
		days[i] = r.Start
	}
	return days
}

// PlanChunks monta os chunks de cada tipo, tipo a tipo
func PlanChunks(kinds []domain.CollectionType, rangesFor func(domain.CollectionType) []DateRange) []Chunk {
	plan := make([]Chunk, 0)
	for _, kind := range kinds {
		for _, r := range rangesFor(kind) {
			plan = append(plan, Chunk{Kind: kind, Range: r})
		}
	}
	return plan
}

// RunChunks executa o plano sequencialmente. A falha de um chunk é contada e
// registrada sem interromper os demais; só o cancelamento do contexto para o laço.
func RunChunks(ctx context.Context, req Request, plan []Chunk, delay time.Duration, fn ChunkFunc) (*domain.CollectionResult, error) {
	result := &domain.CollectionResult{}
	result.Total = len(plan)

	tracker := req.tracker()
	tracker.AddTotal(ctx, len(plan))

	for i, chunk := range plan {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		logger := logrus.WithFields(req.Fields()).WithFields(logrus.Fields{
			"chunk":       chunk.Kind,
			"chunk_start": chunk.Range.Start.Format(time.DateOnly),
			"chunk_end":   chunk.Range.End.Format(time.DateOnly),
		})

		rows, err := fn(ctx, chunk)
		if err != nil {
			result.Failed++
			if result.FirstError == nil {
				result.FirstError = err
			}
			tracker.ChunkFailed(ctx, err)
			logger.WithError(err).Error("Falha ao coletar chunk")
		} else {
			result.Completed++
			result.RowsWritten += rows
			tracker.ChunkSucceeded(ctx, rows)
			logger.WithField("rows", rows).Debug("Chunk coletado")
		}

		if i < len(plan)-1 {
			if err := utils.Sleep(ctx, delay); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
