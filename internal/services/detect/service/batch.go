package service

import (
	"context"
	"sync"

	"carelens/internal/services/detect/domain"
)

// DetectBatch analyzes several encounters concurrently, bounded by the
// configured worker count. Per-encounter failures are reported in place;
// one bad encounter never sinks the batch
func (s *Service) DetectBatch(ctx context.Context, in domain.BatchInput) (*domain.BatchResult, error) {
	items := make([]domain.BatchItem, len(in.Encounters))

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range in.Encounters {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			items[i].Index = i
			res, err := s.Detect(ctx, in.Encounters[i])
			if err != nil {
				items[i].Error = err.Error()
				return
			}
			items[i].Result = res
		}(i)
	}
	wg.Wait()

	return &domain.BatchResult{Results: items}, nil
}
