package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/microbian-systems/survey/app"
	"github.com/microbian-systems/survey/httpx"
	"github.com/microbian-systems/survey/log"
	"github.com/microbian-systems/survey/model"
	"github.com/microbian-systems/survey/routes/middlewares"
)

// GET /api/surveys?moduleid=x
func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := strconv.Atoi(r.URL.Query().Get("moduleid"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.moduleid")
			return
		}

		surveys, err := app.Surveys.List(r.Context(), moduleID)
		if err != nil {
			httpx.LogInternalError(w, "surveys.list", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

// GET /api/surveys/5
//
// Responds 200 with the empty default object when the survey is absent or
// owned by another module; the two cases are indistinguishable on purpose.
func GetSurveyByID(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		scope, err := middlewares.CallerScope(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "request.caller_scope")
			return
		}

		survey, err := app.Surveys.Get(r.Context(), id, scope)
		if err != nil {
			httpx.LogInternalError(w, "surveys.get", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

// POST /api/surveys
func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey := model.Survey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		scope, err := middlewares.CallerScope(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "request.caller_scope")
			return
		}

		out, err := app.Surveys.Create(r.Context(), survey, scope)
		if err != nil {
			httpx.LogInternalError(w, "surveys.create", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, out)
	}
}

// PUT /api/surveys/5
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		survey := model.Survey{}
		err = render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		scope, err := middlewares.CallerScope(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "request.caller_scope")
			return
		}

		out, err := app.Surveys.Update(r.Context(), id, survey, scope)
		if err != nil {
			httpx.LogInternalError(w, "surveys.update", err)
			return
		}

		render.JSON(w, r, out)
	}
}

// DELETE /api/surveys/5
//
// Always 204: cascade outcomes only show up in the audit log.
func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		scope, err := middlewares.CallerScope(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "request.caller_scope")
			return
		}

		err = app.Surveys.Delete(r.Context(), id, scope)
		if err != nil {
			httpx.LogInternalError(w, "surveys.delete", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
