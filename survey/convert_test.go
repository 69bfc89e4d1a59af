package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microbian-systems/survey/store"
)

func TestToSurveyNilRow(t *testing.T) {
	survey := ToSurvey(nil)

	assert.Zero(t, survey.SurveyID)
	assert.Zero(t, survey.ModuleID)
	assert.Zero(t, survey.UserID)
	require.NotNil(t, survey.Items, "items must never be nil")
	assert.Empty(t, survey.Items)
}

func TestToSurveyCopiesScalars(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	modified := created.Add(time.Hour)
	userID := 7

	survey := ToSurvey(&store.Survey{
		SurveyID:   3,
		ModuleID:   5,
		SurveyName: "Customer Feedback",
		UserID:     &userID,
		CreatedBy:  "alice",
		CreatedOn:  created,
		ModifiedBy: "bob",
		ModifiedOn: modified,
	})

	assert.Equal(t, 3, survey.SurveyID)
	assert.Equal(t, 5, survey.ModuleID)
	assert.Equal(t, "Customer Feedback", survey.SurveyName)
	assert.Equal(t, 7, survey.UserID)
	assert.Equal(t, "alice", survey.CreatedBy)
	assert.Equal(t, created, survey.CreatedOn)
	assert.Equal(t, "bob", survey.ModifiedBy)
	assert.Equal(t, modified, survey.ModifiedOn)
	require.NotNil(t, survey.Items)
	assert.Empty(t, survey.Items)
}

func TestToSurveyMissingUserMapsToZero(t *testing.T) {
	survey := ToSurvey(&store.Survey{SurveyID: 1, ModuleID: 5})
	assert.Zero(t, survey.UserID)
}

func TestToSurveyPreservesNesting(t *testing.T) {
	choiceID := 9
	row := &store.Survey{
		SurveyID: 1,
		ModuleID: 5,
		Items: []store.SurveyItem{
			{
				ID:        10,
				ItemLabel: "Q1",
				ItemType:  "choice",
				Position:  1,
				Required:  true,
				Options: []store.SurveyItemOption{
					{ID: 100, OptionLabel: "Yes"},
					{ID: 101, OptionLabel: "No"},
				},
			},
			{
				ID:             11,
				ItemLabel:      "Q2",
				ItemType:       "text",
				ItemValue:      "n/a",
				Position:       2,
				SurveyChoiceID: &choiceID,
			},
		},
	}

	survey := ToSurvey(row)

	require.Len(t, survey.Items, 2)

	q1 := survey.Items[0]
	assert.Equal(t, 10, q1.ID)
	assert.Equal(t, "Q1", q1.ItemLabel)
	assert.Equal(t, "choice", q1.ItemType)
	assert.True(t, q1.Required)
	require.Len(t, q1.Options, 2)
	assert.Equal(t, "Yes", q1.Options[0].OptionLabel)
	assert.Equal(t, "No", q1.Options[1].OptionLabel)

	q2 := survey.Items[1]
	assert.Equal(t, "Q2", q2.ItemLabel)
	assert.Equal(t, "n/a", q2.ItemValue)
	require.NotNil(t, q2.SurveyChoiceID)
	assert.Equal(t, 9, *q2.SurveyChoiceID)
	require.NotNil(t, q2.Options, "options must never be nil")
	assert.Empty(t, q2.Options)
}

func TestToSurveysPreservesOrder(t *testing.T) {
	rows := []store.Survey{
		{SurveyID: 3, ModuleID: 5, SurveyName: "third"},
		{SurveyID: 1, ModuleID: 5, SurveyName: "first"},
		{SurveyID: 2, ModuleID: 5, SurveyName: "second"},
	}

	surveys := ToSurveys(rows)

	require.Len(t, surveys, 3)
	assert.Equal(t, "third", surveys[0].SurveyName)
	assert.Equal(t, "first", surveys[1].SurveyName)
	assert.Equal(t, "second", surveys[2].SurveyName)
}

func TestToSurveysEmpty(t *testing.T) {
	surveys := ToSurveys(nil)
	require.NotNil(t, surveys)
	assert.Empty(t, surveys)
}
