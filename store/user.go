package store

type User struct {
	ID           int32
	Name         string
	Email        string
	PasswordHash string
	CreatedTs    int64
	UpdatedTs    int64
}

type FindUser struct {
	ID    *int32
	Email *string
}

type UpdateUser struct {
	ID           int32
	Name         *string
	PasswordHash *string
	UpdatedTs    *int64
}

type DeleteUser struct {
	ID int32
}
