package store

// JournalEntry holds the written content linked from a Journal.
type JournalEntry struct {
	ID        int32
	Title     string
	Text      string
	CreatedTs int64
	UpdatedTs int64
}

// Journal links a user to a journal entry. List queries resolve the linked
// entry; a dangling link yields a nil Entry rather than an error.
type Journal struct {
	ID        int32
	CreatorID int32
	EntryID   int32
	CreatedTs int64
	UpdatedTs int64

	Entry *JournalEntry
}

type FindJournal struct {
	ID        *int32
	CreatorID *int32
	// Limit caps the result count; results are always newest first.
	Limit *int
}

// UpdateJournalEntry patches the entry linked from the journal with the
// given ID. Nil fields are left untouched.
type UpdateJournalEntry struct {
	JournalID int32
	Title     *string
	Text      *string
	UpdatedTs *int64
}

type DeleteJournal struct {
	ID int32
}
