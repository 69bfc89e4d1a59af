package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"github.com/microbian-systems/survey/app"
	"github.com/microbian-systems/survey/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	view := middlewares.View(app.TokenSecret)
	edit := middlewares.Edit(app.TokenSecret)

	api := chi.NewRouter()

	api.Route("/surveys", func(r chi.Router) {
		r.With(view).Get("/", ListSurveys(app))
		r.With(view).Get(`/{id:^\d+$}`, GetSurveyByID(app))
		r.With(edit).Post("/", CreateSurvey(app))
		r.With(edit).Put(`/{id:^\d+$}`, UpdateSurvey(app))
		r.With(edit).Delete(`/{id:^\d+$}`, DeleteSurvey(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
