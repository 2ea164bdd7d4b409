package collecting

import "context"

// Tracker recebe o progresso dos chunks enquanto a coleta acontece
type Tracker interface {
	AddTotal(ctx context.Context, n int)
	ChunkSucceeded(ctx context.Context, rows int)
	ChunkFailed(ctx context.Context, err error)
}

type NopTracker struct{}

func (NopTracker) AddTotal(context.Context, int)       {}
func (NopTracker) ChunkSucceeded(context.Context, int) {}
func (NopTracker) ChunkFailed(context.Context, error)  {}
