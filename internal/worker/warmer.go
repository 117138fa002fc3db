package worker

import (
	"context"
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	logger "github.com/sirupsen/logrus"
	"sync"
)

// Warmer загружает в кеш сервиса диапазонов BIN префиксы, сохраненные ранее.
// При вызове NewWarmer добавляет в очередь все сохраненные префиксы, для их
// загрузки создается Warmer.workersCount воркеров. Воркер ждет завершения
// загрузки префикса, прежде чем взять следующий.
type Warmer struct {
	repository   WarmerRepository
	ranges       RangeRetriever
	jobs         chan string
	wg           *sync.WaitGroup
	workersCount int
}

type WarmerRepository interface {
	FindPrefixes(ctx context.Context) []string
}

type RangeRetriever interface {
	RetrieveBINRanges(prefix string, completion binrange.Completion)
}

func NewWarmer(
	ctx context.Context,
	r WarmerRepository,
	rr RangeRetriever,
	j chan string,
	wg *sync.WaitGroup,
	w int,
) *Warmer {
	warmer := &Warmer{
		repository:   r,
		ranges:       rr,
		jobs:         j,
		wg:           wg,
		workersCount: w,
	}

	for _, p := range warmer.repository.FindPrefixes(ctx) {
		go func(prefix string) {
			warmer.jobs <- prefix
		}(p)
	}

	return warmer
}

func (w *Warmer) Do(ctx context.Context) {
	for i := 0; i < w.workersCount; i++ {
		w.wg.Add(1)

		go w.worker(ctx)
	}
}

func (w *Warmer) worker(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case prefix, ok := <-w.jobs:
			if !ok {
				return
			}

			done := make(chan struct{})
			w.ranges.RetrieveBINRanges(prefix, func(_ []entity.BINRange, err error) {
				if err != nil {
					logger.WithField("prefix", prefix).WithError(err).Warn("ошибка загрузки диапазонов BIN в кеш")
				}
				close(done)
			})

			select {
			case <-done:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
