package store

import "time"

// Survey is a persisted survey row together with its item rows.
// UserID is nullable in storage; the API layer maps a missing value to 0.
type Survey struct {
	SurveyID   int
	ModuleID   int
	SurveyName string
	UserID     *int
	CreatedBy  string
	CreatedOn  time.Time
	ModifiedBy string
	ModifiedOn time.Time
	Items      []SurveyItem
}

// SurveyItem rows are loaded ordered by position, then id.
type SurveyItem struct {
	ID             int
	SurveyID       int
	ItemLabel      string
	ItemType       string
	ItemValue      string
	Position       int
	Required       bool
	SurveyChoiceID *int
	Options        []SurveyItemOption
}

type SurveyItemOption struct {
	ID          int
	ItemID      int
	OptionLabel string
}

// User is the account row behind an authenticated identity. ModuleID is the
// module the user is authorized for; Roles is a comma-separated role list
// ("view,edit") carried into token claims.
type User struct {
	UserID      int
	Username    string
	DisplayName string
	ModuleID    int
	Roles       string
}
