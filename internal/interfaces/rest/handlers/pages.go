package handlers

import (
	"net/http"

	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-fetch/internal/render"
)

const homeNewsLimit = 3

type HomePage struct {
	Slides []domain.DogSlide `json:"slides"`
	News   []domain.News     `json:"news"`
}

type NewsListPage struct {
	News []domain.News `json:"news"`
	Tags []domain.Tag  `json:"tags"`
}

type NewsPage struct {
	News domain.News `json:"news"`
}

type DogListPage struct {
	Dogs []DogView    `json:"dogs"`
	Tags []domain.Tag `json:"tags"`
}

type DogPage struct {
	Dog DogView `json:"dog"`
}

// DogView is a dog with its display age.
type DogView struct {
	domain.Dog
	AgeText string `json:"age_text"`
}

func newDogView(d domain.Dog) DogView {
	return DogView{Dog: d, AgeText: d.AgeText()}
}

// Home serves the landing page data
// @Summary      Home page
// @Description  Dog photo carousel and the latest three news items. The carousel is optional and comes back empty when the dog list fails.
// @Tags         pages
// @Produce      json
// @Success      200  {object}  rest.Response       "Slides and news"
// @Failure      502  {object}  rest.ErrorResponse  "Backend failed or answered with an unexpected shape"
// @Failure      504  {object}  rest.ErrorResponse  "Backend did not answer in time"
// @Router       /pages/home [get]
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	pass, ok := h.pass(w, r)
	if !ok {
		return
	}

	var (
		slides asyncdata.Result[[]domain.DogSlide]
		news   asyncdata.Result[[]domain.News]
	)
	err := pass.Prefetch(r.Context(),
		render.Optional(&slides, pass.Resources.DogSlides()),
		render.Into(&news, pass.Resources.NewsList()),
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	if slides.Err != nil {
		h.logger.Warn("home page rendered without slides", "error", slides.Err)
	}

	latest := news.Data
	if len(latest) > homeNewsLimit {
		latest = latest[:homeNewsLimit]
	}
	rest.WriteJSON(w, http.StatusOK, HomePage{
		Slides: nonNil(slides.Data),
		News:   nonNil(latest),
	})
}

// NewsList serves the news feed
// @Summary      News list
// @Description  All news items with the tag list used for filtering.
// @Tags         pages
// @Produce      json
// @Success      200  {object}  rest.Response       "News and tags"
// @Failure      502  {object}  rest.ErrorResponse  "Backend failed"
// @Failure      504  {object}  rest.ErrorResponse  "Backend did not answer in time"
// @Router       /pages/news [get]
func (h *Handlers) NewsList(w http.ResponseWriter, r *http.Request) {
	pass, ok := h.pass(w, r)
	if !ok {
		return
	}

	var (
		news asyncdata.Result[[]domain.News]
		tags asyncdata.Result[[]domain.Tag]
	)
	err := pass.Prefetch(r.Context(),
		render.Into(&news, pass.Resources.NewsList()),
		render.Optional(&tags, pass.Resources.Tags()),
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, NewsListPage{
		News: nonNil(news.Data),
		Tags: nonNil(tags.Data),
	})
}

// NewsDetail serves one news item
// @Summary      News item
// @Tags         pages
// @Produce      json
// @Param        id   path      int                 true  "News ID"
// @Success      200  {object}  rest.Response       "News item"
// @Failure      400  {object}  rest.ErrorResponse  "ID is not a positive integer"
// @Failure      404  {object}  rest.ErrorResponse  "No such news item"
// @Failure      502  {object}  rest.ErrorResponse  "Backend failed"
// @Router       /pages/news/{id} [get]
func (h *Handlers) NewsDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	pass, ok := h.pass(w, r)
	if !ok {
		return
	}

	news := pass.Resources.News(id).Load(r.Context())
	if !h.ready(w, r, news.Pending, news.Err) {
		return
	}
	rest.WriteJSON(w, http.StatusOK, NewsPage{News: news.Data})
}

// DogList serves the catalogue
// @Summary      Dog list
// @Description  All dogs with their display age, plus the tag list.
// @Tags         pages
// @Produce      json
// @Success      200  {object}  rest.Response       "Dogs and tags"
// @Failure      502  {object}  rest.ErrorResponse  "Backend failed"
// @Failure      504  {object}  rest.ErrorResponse  "Backend did not answer in time"
// @Router       /pages/dogs [get]
func (h *Handlers) DogList(w http.ResponseWriter, r *http.Request) {
	pass, ok := h.pass(w, r)
	if !ok {
		return
	}

	var (
		dogs asyncdata.Result[[]domain.Dog]
		tags asyncdata.Result[[]domain.Tag]
	)
	err := pass.Prefetch(r.Context(),
		render.Into(&dogs, pass.Resources.Dogs()),
		render.Optional(&tags, pass.Resources.Tags()),
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	views := make([]DogView, 0, len(dogs.Data))
	for _, d := range dogs.Data {
		views = append(views, newDogView(d))
	}
	rest.WriteJSON(w, http.StatusOK, DogListPage{
		Dogs: views,
		Tags: nonNil(tags.Data),
	})
}

// DogDetail serves one dog
// @Summary      Dog profile
// @Tags         pages
// @Produce      json
// @Param        id   path      int                 true  "Dog ID"
// @Success      200  {object}  rest.Response       "Dog with display age"
// @Failure      400  {object}  rest.ErrorResponse  "ID is not a positive integer"
// @Failure      404  {object}  rest.ErrorResponse  "No such dog"
// @Failure      502  {object}  rest.ErrorResponse  "Backend failed"
// @Router       /pages/dogs/{id} [get]
func (h *Handlers) DogDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	pass, ok := h.pass(w, r)
	if !ok {
		return
	}

	dog := pass.Resources.Dog(id).Load(r.Context())
	if !h.ready(w, r, dog.Pending, dog.Err) {
		return
	}
	rest.WriteJSON(w, http.StatusOK, DogPage{Dog: newDogView(dog.Data)})
}

func (h *Handlers) pass(w http.ResponseWriter, r *http.Request) (*render.Pass, bool) {
	pass, err := h.renderer.NewPass(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return nil, false
	}
	return pass, true
}

// ready writes the error response for a result that has no data. A result
// is only left pending when the request context ended.
func (h *Handlers) ready(w http.ResponseWriter, r *http.Request, pending bool, err error) bool {
	switch {
	case err != nil:
		rest.WriteError(w, err, h.logger)
		return false
	case pending:
		rest.WriteError(w, r.Context().Err(), h.logger)
		return false
	}
	return true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
