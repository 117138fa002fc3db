package binrange

import (
	"context"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	inerr "github.com/ivanpodgorny/cardcheck/internal/errors"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"strconv"
	"sync"
	"time"
)

// PrefixLength - количество первых цифр номера, по которым кешируются диапазоны BIN.
const PrefixLength = 6

// Completion вызывается по завершении запроса диапазонов. При ошибке ranges пуст.
type Completion func(ranges []entity.BINRange, err error)

type Fetcher interface {
	GetBINRanges(ctx context.Context, prefix string) ([]entity.BINRange, error)
}

// Service хранит диапазоны BIN, полученные от внешнего сервиса метаданных, и
// объединяет одновременные запросы по одному префиксу в один. Запрос, завершившийся
// ошибкой, не повторяется автоматически: запись остается в состоянии
// entity.LoadStateFailed до вызова Retry или Reset.
type Service struct {
	fetcher Fetcher
	timeout time.Duration
	mu      sync.Mutex
	entries map[string]*entry
	calls   uint64
	group   singleflight.Group
}

type entry struct {
	state  entity.LoadState
	ranges []entity.BINRange
	err    error
	call   string
}

// NewService создает сервис диапазонов BIN. Если f равен nil, диапазоны не
// запрашиваются: любой запрос завершается успешно с пустым списком.
func NewService(f Fetcher, timeout time.Duration) *Service {
	return &Service{
		fetcher: f,
		timeout: timeout,
		entries: make(map[string]*entry),
	}
}

// Key возвращает ключ кеша для номера или префикса: его первые PrefixLength цифр.
func Key(prefix string) (string, bool) {
	if len(prefix) < PrefixLength {
		return "", false
	}

	return prefix[:PrefixLength], true
}

// HasBINRanges сообщает, загружены ли диапазоны, покрывающие prefix.
func (s *Service) HasBINRanges(prefix string) bool {
	_, ok := s.CachedRanges(prefix)

	return ok
}

func (s *Service) IsLoadingCardMetadata(prefix string) bool {
	return s.State(prefix) == entity.LoadStateLoading
}

func (s *Service) State(prefix string) entity.LoadState {
	key, ok := Key(prefix)
	if !ok {
		return entity.LoadStateNotLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		return e.state
	}

	return entity.LoadStateNotLoaded
}

// CachedRanges возвращает загруженные диапазоны, покрывающие prefix.
func (s *Service) CachedRanges(prefix string) ([]entity.BINRange, bool) {
	key, ok := Key(prefix)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.state != entity.LoadStateLoaded {
		return nil, false
	}

	var ranges []entity.BINRange
	for _, r := range e.ranges {
		if r.Matches(prefix) {
			ranges = append(ranges, r)
		}
	}

	return ranges, len(ranges) > 0
}

// Ranges возвращает все загруженные для ключа prefix диапазоны и состояние записи.
func (s *Service) Ranges(prefix string) ([]entity.BINRange, entity.LoadState) {
	key, ok := Key(prefix)
	if !ok {
		return nil, entity.LoadStateNotLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, entity.LoadStateNotLoaded
	}

	return append([]entity.BINRange(nil), e.ranges...), e.state
}

// RetrieveBINRanges запрашивает диапазоны для prefix. Если результат уже известен
// (entity.LoadStateLoaded или entity.LoadStateFailed), completion вызывается сразу,
// в вызывающей горутине. Иначе completion вызывается из отдельной горутины после
// обновления кеша; одновременные вызовы для одного префикса ждут один и тот же запрос.
func (s *Service) RetrieveBINRanges(prefix string, completion Completion) {
	key, ok := Key(prefix)
	if !ok {
		complete(completion, nil, inerr.ErrPrefixTooShort)

		return
	}

	s.mu.Lock()
	e := s.entry(key)
	if e.state == entity.LoadStateLoaded || e.state == entity.LoadStateFailed {
		ranges, err := e.ranges, e.err
		s.mu.Unlock()
		complete(completion, ranges, err)

		return
	}

	if e.state == entity.LoadStateNotLoaded {
		s.calls++
		e.state = entity.LoadStateLoading
		e.call = key + "/" + strconv.FormatUint(s.calls, 10)
	}

	call := e.call
	ch := s.group.DoChan(call, func() (any, error) {
		return s.fetch(key, call)
	})
	s.mu.Unlock()

	go func() {
		res := <-ch
		ranges, _ := res.Val.([]entity.BINRange)
		complete(completion, ranges, res.Err)
	}()
}

// Retry сбрасывает ошибку предыдущего запроса для prefix и запрашивает диапазоны заново.
func (s *Service) Retry(prefix string, completion Completion) {
	if key, ok := Key(prefix); ok {
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && e.state == entity.LoadStateFailed {
			e.state, e.err = entity.LoadStateNotLoaded, nil
		}
		s.mu.Unlock()
	}

	s.RetrieveBINRanges(prefix, completion)
}

// Store сохраняет в кеш уже известные диапазоны для prefix. Используется для
// прогрева кеша; запись, ожидающая ответа, не перезаписывается.
func (s *Service) Store(prefix string, ranges []entity.BINRange) {
	key, ok := Key(prefix)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	if e.state == entity.LoadStateLoading {
		return
	}

	e.state, e.ranges, e.err = entity.LoadStateLoaded, ranges, nil
}

// Reset очищает кеш. Результаты запросов, выполняющихся в момент вызова,
// в кеш не попадают.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry)
}

// fetch выполняет запрос call и сохраняет результат, только если запись для key
// все еще ожидает именно этот запрос.
func (s *Service) fetch(key, call string) ([]entity.BINRange, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var (
		ranges []entity.BINRange
		err    error
	)
	if s.fetcher != nil {
		ranges, err = s.fetcher.GetBINRanges(ctx, key)
	}
	if err != nil {
		logger.WithField("prefix", key).WithError(err).Warn("ошибка получения диапазонов BIN")
		ranges = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.call != call || e.state != entity.LoadStateLoading {
		return ranges, err
	}

	if err != nil {
		e.state, e.ranges, e.err = entity.LoadStateFailed, nil, err
	} else {
		e.state, e.ranges, e.err = entity.LoadStateLoaded, ranges, nil
	}

	return ranges, err
}

// entry должен вызываться под s.mu.
func (s *Service) entry(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{state: entity.LoadStateNotLoaded}
		s.entries[key] = e
	}

	return e
}

// complete передает в c копию ranges: срез из кеша общий для всех ожидающих.
func complete(c Completion, ranges []entity.BINRange, err error) {
	if c == nil {
		return
	}

	if ranges != nil {
		ranges = append(make([]entity.BINRange, 0, len(ranges)), ranges...)
	}

	c(ranges, err)
}
