// Package media provides the local persistence layer for confirmed media
// records.
//
// # Overview
//
// The package defines a Repository interface for storing and reading
// MediaRecord values (see internal/client/models) per site. SQLiteRepository
// persists them in the "media" table created by the embedded migrations,
// through a dbx.DBTX (either *sql.DB or *sql.Tx).
//
// Placeholder (transient) records are never stored; callers filter them out.
//
// # Concurrency
//
// SQLiteRepository is safe for concurrent use when backed by *sql.DB.
//
// Typical Usage
//
//	repo := media.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, siteID, rec)
//	list, _ := repo.List(ctx, siteID)
//	one, _ := repo.Get(ctx, siteID, id)
//	_ = repo.Delete(ctx, siteID, id)
package media
