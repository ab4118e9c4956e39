// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Admin struct {
		ID, Username, Password string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	News struct {
		ID, Title, Body, Created, IsDeleted, UUID string
	}
}{
	Admin: struct {
		ID, Username, Password string
	}{
		ID:       "id",
		Username: "username",
		Password: "password",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	News: struct {
		ID, Title, Body, Created, IsDeleted, UUID string
	}{
		ID:        "id",
		Title:     "title",
		Body:      "body",
		Created:   "created",
		IsDeleted: "is_deleted",
		UUID:      "uuid",
	},
}

var Tables = struct {
	Admin struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	News struct {
		Name, Alias string
	}
}{
	Admin: struct {
		Name, Alias string
	}{
		Name:  "admins",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	News: struct {
		Name, Alias string
	}{
		Name:  "news",
		Alias: "t",
	},
}

type Admin struct {
	tableName struct{} `pg:"admins,alias:t,discard_unknown_columns"`

	ID       int    `pg:"id,pk"`
	Username string `pg:"username,use_zero"`
	Password string `pg:"password,use_zero"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	Title     string    `pg:"title,use_zero"`
	Body      string    `pg:"body,use_zero"`
	Created   time.Time `pg:"created,use_zero"`
	IsDeleted bool      `pg:"is_deleted,use_zero"`
	UUID      string    `pg:"uuid,use_zero"`
}
