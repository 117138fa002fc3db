package worker

import (
	"context"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	logger "github.com/sirupsen/logrus"
	"sync"
)

// RangeSaver получает задачи на сохранение диапазонов BIN и сохраняет их в каждое
// из хранилищ RangeSaver.stores. Для сохранения создается RangeSaver.workersCount воркеров.
type RangeSaver struct {
	stores       []RangeStore
	queue        <-chan entity.RangeSaveJob
	wg           *sync.WaitGroup
	workersCount int
}

type RangeStore interface {
	Save(ctx context.Context, prefix string, ranges []entity.BINRange) error
}

func NewRangeSaver(s []RangeStore, q <-chan entity.RangeSaveJob, wg *sync.WaitGroup, w int) *RangeSaver {
	return &RangeSaver{
		stores:       s,
		queue:        q,
		wg:           wg,
		workersCount: w,
	}
}

func (s *RangeSaver) Do(ctx context.Context) {
	for i := 0; i < s.workersCount; i++ {
		s.wg.Add(1)

		go s.worker(ctx)
	}
}

func (s *RangeSaver) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case j, ok := <-s.queue:
			if !ok {
				return
			}

			for _, store := range s.stores {
				if err := store.Save(ctx, j.Prefix, j.Ranges); err != nil {
					logger.WithField("prefix", j.Prefix).WithError(err).Error("ошибка сохранения диапазонов BIN")
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
