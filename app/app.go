package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/microbian-systems/survey/config"
	"github.com/microbian-systems/survey/survey"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Surveys *survey.Service
}
