package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	inerr "github.com/ivanpodgorny/cardcheck/internal/errors"
	logger "github.com/sirupsen/logrus"
)

// Metadata ищет диапазоны BIN последовательно в общем кеше, в базе данных и во
// внешнем сервисе метаданных карт. Диапазоны, найденные не в кеше, отправляются
// в очередь на сохранение.
type Metadata struct {
	cache      RangeCache
	repository RangeRepository
	client     MetadataClient
	queue      chan<- entity.RangeSaveJob
}

type RangeCache interface {
	Get(ctx context.Context, prefix string) ([]entity.BINRange, error)
}

type RangeRepository interface {
	FindByPrefix(ctx context.Context, prefix string) ([]entity.BINRange, error)
}

type MetadataClient interface {
	GetBINRanges(ctx context.Context, prefix string) ([]entity.BINRange, error)
}

func NewMetadata(c RangeCache, r RangeRepository, mc MetadataClient, q chan<- entity.RangeSaveJob) *Metadata {
	return &Metadata{
		cache:      c,
		repository: r,
		client:     mc,
		queue:      q,
	}
}

// GetBINRanges возвращает диапазоны BIN для префикса. Ошибки кеша и базы данных
// не прерывают поиск, ошибка внешнего сервиса возвращается как errors.ErrLookupFailed.
func (s *Metadata) GetBINRanges(ctx context.Context, prefix string) ([]entity.BINRange, error) {
	if s.cache != nil {
		ranges, err := s.cache.Get(ctx, prefix)
		if err == nil {
			return ranges, nil
		}

		if !errors.Is(err, inerr.ErrCacheMiss) {
			logger.WithField("prefix", prefix).WithError(err).Warn("ошибка чтения диапазонов из кеша")
		}
	}

	ranges, err := s.repository.FindByPrefix(ctx, prefix)
	if err != nil {
		logger.WithField("prefix", prefix).WithError(err).Warn("ошибка чтения диапазонов из базы данных")
	}

	if len(ranges) > 0 {
		s.save(prefix, ranges)

		return ranges, nil
	}

	ranges, err = s.client.GetBINRanges(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inerr.ErrLookupFailed, err)
	}

	if len(ranges) > 0 {
		s.save(prefix, ranges)
	}

	return ranges, nil
}

func (s *Metadata) save(prefix string, ranges []entity.BINRange) {
	go func() {
		s.queue <- entity.RangeSaveJob{
			Prefix: prefix,
			Ranges: ranges,
		}
	}()
}
