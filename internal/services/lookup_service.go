package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
)

// LookupKind - справочник, по которому показываются id в плашках и выгрузке.
type LookupKind string

const (
	LookupStores         LookupKind = "stores"
	LookupOrderStatuses  LookupKind = "order-statuses"
	LookupHelpCategories LookupKind = "help-categories"
)

type LookupServiceInterface interface {
	// Names - id -> название. При ошибке API пустая карта: плашка покажет сырое значение.
	Names(ctx context.Context, kind LookupKind) map[int64]string
	Invalidate(ctx context.Context, kinds ...LookupKind)
}

type named interface {
	GetID() int64
}

type LookupService struct {
	*BaseService
	client *adminapi.Client
	ttl    time.Duration
}

func NewLookupService(client *adminapi.Client, cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) LookupServiceInterface {
	return &LookupService{
		BaseService: NewBaseService(cache, logger.Named("lookups")),
		client:      client,
		ttl:         ttl,
	}
}

func lookupCacheKey(kind LookupKind) string { return "lookup:" + string(kind) }

func (s *LookupService) Names(ctx context.Context, kind LookupKind) map[int64]string {
	names := make(map[int64]string)
	if s.CacheGet(ctx, lookupCacheKey(kind), &names) {
		return names
	}

	var err error
	switch kind {
	case LookupStores:
		names, err = fetchNames(ctx, s.client.Stores, func(v entities.Store) string { return v.Name })
	case LookupOrderStatuses:
		names, err = fetchNames(ctx, s.client.OrderStatuses, func(v entities.OrderStatus) string { return v.Name })
	case LookupHelpCategories:
		names, err = fetchNames(ctx, s.client.HelpCategories, func(v entities.HelpCategory) string { return v.Name })
	default:
		return names
	}
	if err != nil {
		s.logger.Warn("Не удалось загрузить справочник", zap.String("lookup", string(kind)), zap.Error(err))
		return map[int64]string{}
	}

	s.CacheSet(ctx, lookupCacheKey(kind), names, s.ttl)
	return names
}

func (s *LookupService) Invalidate(ctx context.Context, kinds ...LookupKind) {
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, lookupCacheKey(k))
	}
	if len(keys) > 0 {
		s.CacheDel(ctx, keys...)
	}
}

func fetchNames[T named](ctx context.Context, load func(context.Context) ([]T, error), name func(T) string) (map[int64]string, error) {
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(items))
	for _, item := range items {
		out[item.GetID()] = name(item)
	}
	return out, nil
}
