package resources

import (
	"context"
	"reflect"

	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
	"github.com/go-playground/validator"
)

var shape = validator.New()

// Resource binds one cache key to one API request and result shape.
type Resource[T any] struct {
	key    string
	src    asyncdata.Source
	loader asyncdata.Loader[T]
}

func newResource[T any](src asyncdata.Source, client ports.HTTPClient, key string, req domain.RequestDescriptor) Resource[T] {
	return Resource[T]{
		key: key,
		src: src,
		loader: func(ctx context.Context) (T, error) {
			var out T
			if err := client.Do(ctx, req, &out); err != nil {
				return out, err
			}
			if err := checkShape(out); err != nil {
				return out, &domain.DecodeError{URL: req.Path(), Err: err}
			}
			return out, nil
		},
	}
}

func (r Resource[T]) Key() string { return r.key }

func (r Resource[T]) Load(ctx context.Context) asyncdata.Result[T] {
	return asyncdata.Load(ctx, r.src, r.key, r.loader)
}

// Refresh fetches again even if a result is cached.
func (r Resource[T]) Refresh(ctx context.Context) asyncdata.Result[T] {
	return asyncdata.Refresh(ctx, r.src, r.key, r.loader)
}

func (r Resource[T]) Invalidate() {
	r.src.Invalidate(r.key)
}

// checkShape rejects records that decoded but lack their identity field.
func checkShape(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return shape.Struct(rv.Interface())
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}
		return shape.Var(rv.Interface(), "dive")
	default:
		return nil
	}
}
