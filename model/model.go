package model

import "time"

// Survey is the API shape of a survey, scoped to the module that owns it.
// Items carry their display order in Position; the slice itself is kept in
// that order on reads.
type Survey struct {
	SurveyID   int          `json:"surveyId,omitempty"`
	ModuleID   int          `json:"moduleId" validate:"required"`
	SurveyName string       `json:"surveyName" validate:"required"`
	UserID     int          `json:"userId,omitempty"`
	CreatedBy  string       `json:"createdBy,omitempty"`
	CreatedOn  time.Time    `json:"createdOn,omitempty"`
	ModifiedBy string       `json:"modifiedBy,omitempty"`
	ModifiedOn time.Time    `json:"modifiedOn,omitempty"`
	Items      []SurveyItem `json:"surveyItem" validate:"dive"`
}

type SurveyItem struct {
	ID             int                `json:"id,omitempty"`
	ItemLabel      string             `json:"itemLabel" validate:"required"`
	ItemType       string             `json:"itemType"`
	ItemValue      string             `json:"itemValue"`
	Position       int                `json:"position"`
	Required       bool               `json:"required"`
	SurveyChoiceID *int               `json:"surveyChoiceId,omitempty"`
	Options        []SurveyItemOption `json:"surveyItemOption" validate:"dive"`
}

type SurveyItemOption struct {
	ID          int    `json:"id,omitempty"`
	OptionLabel string `json:"optionLabel" validate:"required"`
}
