// Package localstore provides the durable key-value storage that survives
// restarts of the CLI.
//
// # Overview
//
// Store is a string-to-string map with the semantics of a browser's local
// storage: Set overwrites, Get reports absence instead of failing, and
// Delete of a missing key is not an error. Values are opaque to the store;
// callers keep JSON documents in them.
//
// Two implementations are provided:
//
//   - SQLiteStore keeps pairs in the local_storage table of an embedded
//     SQLite database opened with Open (migrations are applied by goose).
//   - MemoryStore keeps pairs in a map and can be told to fail writes,
//     which makes it handy in tests.
//
// Typical Usage
//
//	db, _ := localstore.Open(ctx, "gophcloud.db", logger)
//	kv := localstore.NewSQLiteStore(db)
//	_ = kv.Set(ctx, "cloudUserInfo", `{"id":"1"}`)
//	v, ok, _ := kv.Get(ctx, "cloudUserInfo")
package localstore
