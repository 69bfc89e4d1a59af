package survey

import (
	"github.com/microbian-systems/survey/model"
	"github.com/microbian-systems/survey/store"
)

// ToSurvey maps a stored survey row onto the API model. A nil row maps to an
// empty survey, so callers always receive a structurally valid object, and
// every collection comes back non-nil even when empty. Item and option order
// is whatever the store returned.
func ToSurvey(row *store.Survey) model.Survey {
	survey := model.Survey{Items: []model.SurveyItem{}}
	if row == nil {
		return survey
	}

	survey.SurveyID = row.SurveyID
	survey.ModuleID = row.ModuleID
	survey.SurveyName = row.SurveyName
	survey.CreatedBy = row.CreatedBy
	survey.CreatedOn = row.CreatedOn
	survey.ModifiedBy = row.ModifiedBy
	survey.ModifiedOn = row.ModifiedOn
	if row.UserID != nil {
		survey.UserID = *row.UserID
	}

	for _, item := range row.Items {
		options := []model.SurveyItemOption{}
		for _, option := range item.Options {
			options = append(options, model.SurveyItemOption{
				ID:          option.ID,
				OptionLabel: option.OptionLabel,
			})
		}

		survey.Items = append(survey.Items, model.SurveyItem{
			ID:             item.ID,
			ItemLabel:      item.ItemLabel,
			ItemType:       item.ItemType,
			ItemValue:      item.ItemValue,
			Position:       item.Position,
			Required:       item.Required,
			SurveyChoiceID: item.SurveyChoiceID,
			Options:        options,
		})
	}

	return survey
}

// ToSurveys converts element-wise, preserving input order.
func ToSurveys(rows []store.Survey) []model.Survey {
	surveys := make([]model.Survey, 0, len(rows))
	for i := range rows {
		surveys = append(surveys, ToSurvey(&rows[i]))
	}
	return surveys
}
