package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Dilshanrad22/mind-case-backend/store"
)

func (d *DB) CreateJournal(ctx context.Context, create *store.Journal) (*store.Journal, error) {
	if create.Entry == nil {
		return nil, errors.New("journal entry is required")
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	entry := create.Entry
	stmt := `INSERT INTO journal_entry (title, text, created_ts, updated_ts)
		VALUES (` + placeholders(4) + `)
		RETURNING id`
	if err := tx.QueryRowContext(ctx, stmt, entry.Title, entry.Text, entry.CreatedTs, entry.UpdatedTs).Scan(&entry.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create journal entry")
	}

	create.EntryID = entry.ID
	stmt = `INSERT INTO journal (creator_id, entry_id, created_ts, updated_ts)
		VALUES (` + placeholders(4) + `)
		RETURNING id`
	if err := tx.QueryRowContext(ctx, stmt, create.CreatorID, create.EntryID, create.CreatedTs, create.UpdatedTs).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create journal")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit journal creation")
	}

	return create, nil
}

func (d *DB) ListJournals(ctx context.Context, find *store.FindJournal) ([]*store.Journal, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "journal.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CreatorID != nil {
		where, args = append(where, "journal.creator_id = "+placeholder(len(args)+1)), append(args, *find.CreatorID)
	}

	// LEFT JOIN keeps journals with a dangling entry link visible; the
	// caller decides whether to skip them.
	query := `SELECT
			journal.id, journal.creator_id, journal.entry_id, journal.created_ts, journal.updated_ts,
			journal_entry.id, journal_entry.title, journal_entry.text, journal_entry.created_ts, journal_entry.updated_ts
		FROM journal
		LEFT JOIN journal_entry ON journal_entry.id = journal.entry_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY journal.created_ts DESC, journal.id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journals")
	}
	defer rows.Close()

	list := make([]*store.Journal, 0)
	for rows.Next() {
		j := &store.Journal{}
		var entryID sql.NullInt32
		var title, text sql.NullString
		var entryCreated, entryUpdated sql.NullInt64
		if err := rows.Scan(
			&j.ID, &j.CreatorID, &j.EntryID, &j.CreatedTs, &j.UpdatedTs,
			&entryID, &title, &text, &entryCreated, &entryUpdated,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan journal")
		}
		if entryID.Valid {
			j.Entry = &store.JournalEntry{
				ID:        entryID.Int32,
				Title:     title.String,
				Text:      text.String,
				CreatedTs: entryCreated.Int64,
				UpdatedTs: entryUpdated.Int64,
			}
		}
		list = append(list, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate journals")
	}

	return list, nil
}

func (d *DB) UpdateJournalEntry(ctx context.Context, update *store.UpdateJournalEntry) (*store.Journal, error) {
	set, args := []string{}, []any{}

	if update.Title != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *update.Title)
	}
	if update.Text != nil {
		set, args = append(set, "text = "+placeholder(len(args)+1)), append(args, *update.Text)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.JournalID)
	stmt := `UPDATE journal_entry SET ` + strings.Join(set, ", ") + `
		WHERE id = (SELECT entry_id FROM journal WHERE id = ` + placeholder(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update journal entry")
	}

	journalID := update.JournalID
	journals, err := d.ListJournals(ctx, &store.FindJournal{ID: &journalID})
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, errors.New("journal not found")
	}
	return journals[0], nil
}

func (d *DB) DeleteJournal(ctx context.Context, delete *store.DeleteJournal) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM journal_entry WHERE id = (SELECT entry_id FROM journal WHERE id = `+placeholder(1)+`)`,
		delete.ID,
	); err != nil {
		return errors.Wrap(err, "failed to delete journal entry")
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM journal WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete journal")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.New("journal not found")
	}

	return errors.Wrap(tx.Commit(), "failed to commit journal deletion")
}
