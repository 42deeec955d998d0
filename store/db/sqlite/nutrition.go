package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/Dilshanrad22/mind-case-backend/store"
)

func (d *DB) CreateFood(ctx context.Context, create *store.Food) (*store.Food, error) {
	fields := []string{"creator_id", "name", "calories", "quantity", "date", "created_ts", "updated_ts"}
	args := []any{create.CreatorID, create.Name, create.Calories, create.Quantity, create.Date, create.CreatedTs, create.UpdatedTs}

	stmt := `INSERT INTO food (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create food")
	}

	return create, nil
}

func (d *DB) ListFoods(ctx context.Context, find *store.FindFood) ([]*store.Food, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CreatorID != nil {
		where, args = append(where, "creator_id = "+placeholder(len(args)+1)), append(args, *find.CreatorID)
	}
	if find.DateAfter != nil {
		where, args = append(where, "date >= "+placeholder(len(args)+1)), append(args, *find.DateAfter)
	}
	if find.DateBefore != nil {
		where, args = append(where, "date < "+placeholder(len(args)+1)), append(args, *find.DateBefore)
	}

	query := `SELECT id, creator_id, name, calories, quantity, date, created_ts, updated_ts FROM food
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list foods")
	}
	defer rows.Close()

	list := make([]*store.Food, 0)
	for rows.Next() {
		f := &store.Food{}
		if err := rows.Scan(&f.ID, &f.CreatorID, &f.Name, &f.Calories, &f.Quantity, &f.Date, &f.CreatedTs, &f.UpdatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan food")
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate foods")
	}

	return list, nil
}

func (d *DB) DeleteFood(ctx context.Context, delete *store.DeleteFood) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM food WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete food")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.New("food not found")
	}
	return nil
}

func (d *DB) UpsertDailyNutrition(ctx context.Context, upsert *store.UpsertDailyNutrition) (*store.DailyNutrition, error) {
	stmt := `INSERT INTO daily_nutrition (
			creator_id, date, total_calories, steps_walked, calories_burned, remaining_calories, steps_needed, created_ts, updated_ts
		)
		VALUES (` + placeholders(9) + `)
		ON CONFLICT(creator_id, date) DO UPDATE SET
			total_calories = excluded.total_calories,
			steps_walked = excluded.steps_walked,
			calories_burned = excluded.calories_burned,
			remaining_calories = excluded.remaining_calories,
			steps_needed = excluded.steps_needed,
			updated_ts = excluded.updated_ts
		RETURNING id, creator_id, date, total_calories, steps_walked, calories_burned, remaining_calories, steps_needed, created_ts, updated_ts`

	n := &store.DailyNutrition{}
	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.CreatorID, upsert.Date, upsert.TotalCalories, upsert.StepsWalked,
		upsert.CaloriesBurned, upsert.RemainingCalories, upsert.StepsNeeded,
		upsert.UpdatedTs, upsert.UpdatedTs,
	).Scan(
		&n.ID, &n.CreatorID, &n.Date, &n.TotalCalories, &n.StepsWalked,
		&n.CaloriesBurned, &n.RemainingCalories, &n.StepsNeeded, &n.CreatedTs, &n.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert daily nutrition")
	}

	return n, nil
}

func (d *DB) ListDailyNutrition(ctx context.Context, find *store.FindDailyNutrition) ([]*store.DailyNutrition, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.CreatorID != nil {
		where, args = append(where, "creator_id = "+placeholder(len(args)+1)), append(args, *find.CreatorID)
	}
	if find.Date != nil {
		where, args = append(where, "date = "+placeholder(len(args)+1)), append(args, *find.Date)
	}
	if find.DateAfter != nil {
		where, args = append(where, "date >= "+placeholder(len(args)+1)), append(args, *find.DateAfter)
	}
	if find.DateBefore != nil {
		where, args = append(where, "date <= "+placeholder(len(args)+1)), append(args, *find.DateBefore)
	}

	query := `SELECT id, creator_id, date, total_calories, steps_walked, calories_burned, remaining_calories, steps_needed, created_ts, updated_ts
		FROM daily_nutrition
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY date ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily nutrition")
	}
	defer rows.Close()

	list := make([]*store.DailyNutrition, 0)
	for rows.Next() {
		n := &store.DailyNutrition{}
		if err := rows.Scan(
			&n.ID, &n.CreatorID, &n.Date, &n.TotalCalories, &n.StepsWalked,
			&n.CaloriesBurned, &n.RemainingCalories, &n.StepsNeeded, &n.CreatedTs, &n.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan daily nutrition")
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate daily nutrition")
	}

	return list, nil
}
