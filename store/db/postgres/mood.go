package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Dilshanrad22/mind-case-backend/store"
)

func (d *DB) CreateMood(ctx context.Context, create *store.Mood) (*store.Mood, error) {
	fields := []string{"creator_id", "mood_type", "created_ts", "updated_ts"}
	args := []any{create.CreatorID, string(create.MoodType), create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO mood (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create mood")
	}

	return create, nil
}

func (d *DB) ListMoods(ctx context.Context, find *store.FindMood) ([]*store.Mood, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CreatorID != nil {
		where, args = append(where, "creator_id = "+placeholder(len(args)+1)), append(args, *find.CreatorID)
	}
	if find.MoodType != nil {
		where, args = append(where, "mood_type = "+placeholder(len(args)+1)), append(args, string(*find.MoodType))
	}
	if find.CreatedTsAfter != nil {
		where, args = append(where, "created_ts >= "+placeholder(len(args)+1)), append(args, *find.CreatedTsAfter)
	}
	if find.CreatedTsBefore != nil {
		where, args = append(where, "created_ts <= "+placeholder(len(args)+1)), append(args, *find.CreatedTsBefore)
	}

	query := `SELECT id, creator_id, mood_type, created_ts, updated_ts FROM mood
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list moods")
	}
	defer rows.Close()

	list := make([]*store.Mood, 0)
	for rows.Next() {
		m := &store.Mood{}
		var moodType string
		if err := rows.Scan(&m.ID, &m.CreatorID, &moodType, &m.CreatedTs, &m.UpdatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan mood")
		}
		m.MoodType = store.MoodType(moodType)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate moods")
	}

	return list, nil
}

func (d *DB) UpdateMood(ctx context.Context, update *store.UpdateMood) (*store.Mood, error) {
	set, args := []string{}, []any{}

	if update.MoodType != nil {
		set, args = append(set, "mood_type = "+placeholder(len(args)+1)), append(args, string(*update.MoodType))
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE mood SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, creator_id, mood_type, created_ts, updated_ts`
	m := &store.Mood{}
	var moodType string
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&m.ID, &m.CreatorID, &moodType, &m.CreatedTs, &m.UpdatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to update mood")
	}
	m.MoodType = store.MoodType(moodType)

	return m, nil
}

func (d *DB) DeleteMood(ctx context.Context, delete *store.DeleteMood) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM mood WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete mood")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.New("mood not found")
	}
	return nil
}
