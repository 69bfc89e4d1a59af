package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/microbian-systems/survey/log"
	"github.com/microbian-systems/survey/model"
)

// SQLite persists surveys with plain database/sql queries. Deleting an item
// row cascades its option rows via foreign keys.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db}
}

func (s *SQLite) GetAllByModule(ctx context.Context, moduleID int) ([]Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT survey_id, module_id, survey_name, user_id,
			created_by, created_on, modified_by, modified_on
		FROM survey
		WHERE module_id = ?
		ORDER BY survey_id`,
		moduleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := []Survey{}
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range surveys {
		surveys[i].Items, err = s.loadItems(ctx, surveys[i].SurveyID)
		if err != nil {
			return nil, err
		}
	}
	return surveys, nil
}

func (s *SQLite) GetByID(ctx context.Context, id int) (*Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT survey_id, module_id, survey_name, user_id,
			created_by, created_on, modified_by, modified_on
		FROM survey
		WHERE survey_id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	survey, err := scanSurvey(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	survey.Items, err = s.loadItems(ctx, survey.SurveyID)
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func scanSurvey(rows *sql.Rows) (survey Survey, err error) {
	var userID sql.NullInt64
	err = rows.Scan(
		&survey.SurveyID, &survey.ModuleID, &survey.SurveyName, &userID,
		&survey.CreatedBy, &survey.CreatedOn, &survey.ModifiedBy, &survey.ModifiedOn,
	)
	if userID.Valid {
		id := int(userID.Int64)
		survey.UserID = &id
	}
	return
}

func (s *SQLite) loadItems(ctx context.Context, surveyID int) ([]SurveyItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, item_label, item_type, item_value,
			position, required, survey_choice_id
		FROM survey_item
		WHERE survey_id = ?
		ORDER BY position, id`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []SurveyItem{}
	for rows.Next() {
		item := SurveyItem{}
		var choiceID sql.NullInt64
		err = rows.Scan(
			&item.ID, &item.SurveyID, &item.ItemLabel, &item.ItemType,
			&item.ItemValue, &item.Position, &item.Required, &choiceID,
		)
		if err != nil {
			return nil, err
		}
		if choiceID.Valid {
			id := int(choiceID.Int64)
			item.SurveyChoiceID = &id
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Options, err = s.loadOptions(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *SQLite) loadOptions(ctx context.Context, itemID int) ([]SurveyItemOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, option_label
		FROM survey_item_option
		WHERE item_id = ?
		ORDER BY id`,
		itemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []SurveyItemOption{}
	for rows.Next() {
		option := SurveyItemOption{}
		err = rows.Scan(&option.ID, &option.ItemID, &option.OptionLabel)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return options, rows.Err()
}

func (s *SQLite) Create(ctx context.Context, survey model.Survey) (*Survey, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	var surveyID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO survey (module_id, survey_name, user_id,
			created_by, created_on, modified_by, modified_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING survey_id`,
		survey.ModuleID,
		survey.SurveyName,
		nullableID(survey.UserID),
		survey.CreatedBy,
		now,
		survey.ModifiedBy,
		now,
	).Scan(&surveyID)
	if err != nil {
		return nil, err
	}

	err = insertItems(ctx, tx, surveyID, survey.Items)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, surveyID)
}

// Update replaces the stored survey graph with the submitted one: the survey
// row is updated in place, item and option rows are dropped and recreated.
// ModuleID and UserID are never touched after create.
// An id with no stored row yields (nil, nil).
func (s *SQLite) Update(ctx context.Context, survey model.Survey) (*Survey, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE survey
		SET survey_name = ?,
			modified_by = ?,
			modified_on = ?
		WHERE survey_id = ?`,
		survey.SurveyName,
		survey.ModifiedBy,
		time.Now(),
		survey.SurveyID,
	)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, nil
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM survey_item
		WHERE survey_id = ?`,
		survey.SurveyID,
	)
	if err != nil {
		return nil, err
	}

	err = insertItems(ctx, tx, survey.SurveyID, survey.Items)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, survey.SurveyID)
}

func insertItems(ctx context.Context, tx *sql.Tx, surveyID int, items []model.SurveyItem) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_item (survey_id, item_label, item_type, item_value,
			position, required, survey_choice_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	optStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_item_option (item_id, option_label)
		VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer optStmt.Close()

	for _, item := range items {
		var itemID int
		err = stmt.QueryRowContext(ctx,
			surveyID, item.ItemLabel, item.ItemType, item.ItemValue,
			item.Position, item.Required, nullableIDPtr(item.SurveyChoiceID),
		).Scan(&itemID)
		if err != nil {
			return err
		}

		for _, option := range item.Options {
			_, err = optStmt.ExecContext(ctx, itemID, option.OptionLabel)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SQLite) DeleteItem(ctx context.Context, itemID int) bool {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM survey_item WHERE id = ?`,
		itemID,
	)
	if err != nil {
		log.Errorf("store.delete_item: %s", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Errorf("store.delete_item.verify: %s", err)
		return false
	}
	return n > 0
}

func (s *SQLite) DeleteSurvey(ctx context.Context, id int) bool {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM survey WHERE survey_id = ?`,
		id,
	)
	if err != nil {
		log.Errorf("store.delete_survey: %s", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Errorf("store.delete_survey.verify: %s", err)
		return false
	}
	return n > 0
}

// GetUser resolves an authenticated identity to its account row.
func (s *SQLite) GetUser(ctx context.Context, username string) (*User, error) {
	user := User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, display_name, module_id, roles
		FROM user
		WHERE username = ?`,
		username,
	).Scan(&user.UserID, &user.Username, &user.DisplayName, &user.ModuleID, &user.Roles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var ErrUnknownUser = errors.New("store: unknown user")

func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableIDPtr(id *int) any {
	if id == nil {
		return nil
	}
	return *id
}
