package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

// Composables is the entry point views use to reach the API. It is the only
// place request paths and result shapes are tied to cache keys.
type Composables struct {
	src    asyncdata.Source
	client ports.HTTPClient
}

func New(src asyncdata.Source, client ports.HTTPClient) *Composables {
	return &Composables{src: src, client: client}
}

// With returns composables loading through another source, typically a
// view's scope, over the same client.
func (c *Composables) With(src asyncdata.Source) *Composables {
	return &Composables{src: src, client: c.client}
}

func (c *Composables) NewsList() Resource[[]domain.News] {
	return newResource[[]domain.News](c.src, c.client, KeyNews, domain.NewRequest("/news").MustBuild())
}

func (c *Composables) News(id int64) Resource[domain.News] {
	return newResource[domain.News](c.src, c.client, NewsKey(id), domain.NewRequest(fmt.Sprintf("/news/%d", id)).MustBuild())
}

func (c *Composables) Tags() Resource[[]domain.Tag] {
	return newResource[[]domain.Tag](c.src, c.client, KeyTags, domain.NewRequest("/tags").MustBuild())
}

func (c *Composables) Tag(id int64) Resource[domain.Tag] {
	return newResource[domain.Tag](c.src, c.client, TagKey(id), domain.NewRequest(fmt.Sprintf("/tags/%d", id)).MustBuild())
}

func (c *Composables) Dogs() Resource[[]domain.Dog] {
	return newResource[[]domain.Dog](c.src, c.client, KeyDogs, domain.NewRequest("/dogs").MustBuild())
}

func (c *Composables) Dog(id int64) Resource[domain.Dog] {
	return newResource[domain.Dog](c.src, c.client, DogKey(id), domain.NewRequest(fmt.Sprintf("/dogs/%d", id)).MustBuild())
}

// DogSlides is the carousel of dogs that have a photo. It is derived from
// the dog list and shares its load.
func (c *Composables) DogSlides() Resource[[]domain.DogSlide] {
	dogs := c.Dogs()
	return Resource[[]domain.DogSlide]{
		key: KeyDogSlides,
		src: c.src,
		loader: func(ctx context.Context) ([]domain.DogSlide, error) {
			r := dogs.Load(ctx)
			if r.Pending {
				return nil, errors.New("dog list still loading")
			}
			if r.Err != nil {
				return nil, r.Err
			}
			return slidesFrom(r.Data), nil
		},
	}
}

func slidesFrom(dogs []domain.Dog) []domain.DogSlide {
	slides := make([]domain.DogSlide, 0, len(dogs))
	for _, d := range dogs {
		if d.ImageURL == nil || strings.TrimSpace(*d.ImageURL) == "" {
			continue
		}
		slides = append(slides, domain.DogSlide{ID: d.ID, ImageURL: *d.ImageURL})
	}
	return slides
}

func (c *Composables) Stats() Resource[domain.Stats] {
	return newResource[domain.Stats](c.src, c.client, KeyStats, domain.NewRequest("/stats").Authenticated().MustBuild())
}

func (c *Composables) Requests() Resource[[]domain.AdoptionRequest] {
	return newResource[[]domain.AdoptionRequest](c.src, c.client, KeyRequests, domain.NewRequest("/requests").MustBuild())
}

func (c *Composables) Request(id int64) Resource[domain.AdoptionRequest] {
	return newResource[domain.AdoptionRequest](c.src, c.client, RequestKey(id), domain.NewRequest(fmt.Sprintf("/requests/%d", id)).MustBuild())
}

// CreateTag adds a tag and drops the cached tag list.
func (c *Composables) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	req, err := domain.NewRequest("/tags").
		Method(http.MethodPost).
		JSON(domain.Tag{Name: name}).
		Authenticated().
		Build()
	if err != nil {
		return nil, err
	}

	var tag domain.Tag
	if err := c.client.Do(ctx, req, &tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	c.src.Invalidate(KeyTags)
	return &tag, nil
}

func (c *Composables) UpdateTag(ctx context.Context, id int64, name string) (*domain.Tag, error) {
	req, err := domain.NewRequest(fmt.Sprintf("/tags/%d", id)).
		Method(http.MethodPut).
		JSON(domain.Tag{Name: name}).
		Authenticated().
		Build()
	if err != nil {
		return nil, err
	}

	var tag domain.Tag
	if err := c.client.Do(ctx, req, &tag); err != nil {
		return nil, fmt.Errorf("update tag %d: %w", id, err)
	}
	c.src.Invalidate(KeyTags)
	c.src.Invalidate(TagKey(id))
	return &tag, nil
}

func (c *Composables) DeleteTag(ctx context.Context, id int64) error {
	req, err := domain.NewRequest(fmt.Sprintf("/tags/%d", id)).
		Method(http.MethodDelete).
		Authenticated().
		Build()
	if err != nil {
		return err
	}

	if err := c.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	c.src.Invalidate(KeyTags)
	c.src.Invalidate(TagKey(id))
	return nil
}

// PatchTag renames a tag in place.
func (c *Composables) PatchTag(ctx context.Context, id int64, name string) (*domain.Tag, error) {
	req, err := domain.NewRequest(fmt.Sprintf("/tags/%d", id)).
		Method(http.MethodPatch).
		JSON(domain.Tag{Name: name}).
		Authenticated().
		Build()
	if err != nil {
		return nil, err
	}

	var tag domain.Tag
	if err := c.client.Do(ctx, req, &tag); err != nil {
		return nil, fmt.Errorf("patch tag %d: %w", id, err)
	}
	c.src.Invalidate(KeyTags)
	c.src.Invalidate(TagKey(id))
	return &tag, nil
}

// CreateNews publishes a news item and returns its id. The write response
// carries tags as a plain string, so only the id is read back.
func (c *Composables) CreateNews(ctx context.Context, in domain.NewsInput) (int64, error) {
	if err := shape.Struct(in); err != nil {
		return 0, &domain.InvalidRequestError{Reason: err.Error()}
	}
	req, err := domain.NewRequest("/news/").
		Method(http.MethodPost).
		JSON(in).
		Authenticated().
		Build()
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int64 `json:"id" validate:"required"`
	}
	if err := c.client.Do(ctx, req, &created); err != nil {
		return 0, fmt.Errorf("create news: %w", err)
	}
	c.src.Invalidate(KeyNews)
	if err := shape.Struct(created); err != nil {
		return 0, &domain.DecodeError{URL: req.Path(), Err: err}
	}
	return created.ID, nil
}

func (c *Composables) UpdateNews(ctx context.Context, id int64, in domain.NewsInput) error {
	if err := shape.Struct(in); err != nil {
		return &domain.InvalidRequestError{Reason: err.Error()}
	}
	req, err := domain.NewRequest(fmt.Sprintf("/news/%d", id)).
		Method(http.MethodPut).
		JSON(in).
		Build()
	if err != nil {
		return err
	}

	if err := c.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("update news %d: %w", id, err)
	}
	c.src.Invalidate(KeyNews)
	c.src.Invalidate(NewsKey(id))
	return nil
}

func (c *Composables) DeleteNews(ctx context.Context, id int64) error {
	req, err := domain.NewRequest(fmt.Sprintf("/news/%d", id)).
		Method(http.MethodDelete).
		Build()
	if err != nil {
		return err
	}

	if err := c.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete news %d: %w", id, err)
	}
	c.src.Invalidate(KeyNews)
	c.src.Invalidate(NewsKey(id))
	return nil
}

// CreateAdoptionRequest submits a visitor's request for a dog.
func (c *Composables) CreateAdoptionRequest(ctx context.Context, in domain.NewAdoptionRequest) (*domain.AdoptionRequest, error) {
	if in.Status == "" {
		in.Status = domain.RequestStatusNew
	}
	req, err := domain.NewRequest("/requests").
		Method(http.MethodPost).
		JSON(in).
		Build()
	if err != nil {
		return nil, err
	}

	var created domain.AdoptionRequest
	if err := c.client.Do(ctx, req, &created); err != nil {
		return nil, fmt.Errorf("create adoption request: %w", err)
	}
	c.src.Invalidate(KeyRequests)
	c.src.Invalidate(KeyStats)
	return &created, nil
}
