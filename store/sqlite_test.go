package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microbian-systems/survey/config"
	"github.com/microbian-systems/survey/database"
	"github.com/microbian-systems/survey/model"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		INSERT INTO user (username, display_name, password_hash, module_id, roles)
		VALUES ('alice', 'Alice', 'x', 5, 'view,edit')`)
	require.NoError(t, err)

	return NewSQLite(db)
}

func testSurvey() model.Survey {
	return model.Survey{
		ModuleID:   5,
		SurveyName: "Customer Feedback",
		UserID:     1,
		CreatedBy:  "alice",
		ModifiedBy: "alice",
		Items: []model.SurveyItem{
			{
				ItemLabel: "How did you hear about us?",
				ItemType:  "choice",
				Position:  2,
				Options: []model.SurveyItemOption{
					{OptionLabel: "Search"},
					{OptionLabel: "A friend"},
				},
			},
			{
				ItemLabel: "Any comments?",
				ItemType:  "text",
				Position:  1,
				Required:  true,
			},
		},
	}
}

func TestCreateAndGetByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testSurvey())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Greater(t, created.SurveyID, 0)

	row, err := s.GetByID(ctx, created.SurveyID)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, 5, row.ModuleID)
	assert.Equal(t, "Customer Feedback", row.SurveyName)
	require.NotNil(t, row.UserID)
	assert.Equal(t, 1, *row.UserID)
	assert.Equal(t, "alice", row.CreatedBy)
	assert.False(t, row.CreatedOn.IsZero())

	// items come back ordered by position
	require.Len(t, row.Items, 2)
	assert.Equal(t, "Any comments?", row.Items[0].ItemLabel)
	assert.True(t, row.Items[0].Required)
	assert.Empty(t, row.Items[0].Options)

	choice := row.Items[1]
	assert.Equal(t, "How did you hear about us?", choice.ItemLabel)
	require.Len(t, choice.Options, 2)
	assert.Equal(t, "Search", choice.Options[0].OptionLabel)
	assert.Equal(t, "A friend", choice.Options[1].OptionLabel)
}

func TestGetByIDAbsent(t *testing.T) {
	s := openTestStore(t)

	row, err := s.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestGetAllByModuleFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testSurvey()
	_, err := s.Create(ctx, first)
	require.NoError(t, err)

	other := testSurvey()
	other.ModuleID = 6
	other.SurveyName = "Other Module"
	_, err = s.Create(ctx, other)
	require.NoError(t, err)

	rows, err := s.GetAllByModule(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Customer Feedback", rows[0].SurveyName)
	require.Len(t, rows[0].Items, 2)
}

func TestUpdateReplacesItemGraph(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testSurvey())
	require.NoError(t, err)

	replacement := model.Survey{
		SurveyID:   created.SurveyID,
		ModuleID:   5,
		SurveyName: "Renamed",
		ModifiedBy: "alice",
		Items: []model.SurveyItem{
			{ItemLabel: "Only question", ItemType: "text", Position: 1},
		},
	}
	updated, err := s.Update(ctx, replacement)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Renamed", updated.SurveyName)
	assert.Equal(t, 5, updated.ModuleID, "module must survive updates")
	require.NotNil(t, updated.UserID, "user must survive updates")
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Only question", updated.Items[0].ItemLabel)
}

func TestUpdateAbsentSurvey(t *testing.T) {
	s := openTestStore(t)

	row, err := s.Update(context.Background(), model.Survey{
		SurveyID:   99,
		ModuleID:   5,
		SurveyName: "Ghost",
	})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestDeleteItemCascadesOptions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testSurvey())
	require.NoError(t, err)
	itemID := created.Items[1].ID // the choice item

	assert.True(t, s.DeleteItem(ctx, itemID))
	assert.False(t, s.DeleteItem(ctx, itemID), "second delete finds nothing")

	var options int
	err = s.db.QueryRow("SELECT count(*) FROM survey_item_option WHERE item_id = ?", itemID).Scan(&options)
	require.NoError(t, err)
	assert.Zero(t, options)
}

func TestDeleteSurvey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testSurvey())
	require.NoError(t, err)

	assert.True(t, s.DeleteSurvey(ctx, created.SurveyID))
	assert.False(t, s.DeleteSurvey(ctx, created.SurveyID))

	row, err := s.GetByID(ctx, created.SurveyID)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestGetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, user.UserID)
	assert.Equal(t, 5, user.ModuleID)
	assert.Equal(t, "view,edit", user.Roles)

	_, err = s.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
