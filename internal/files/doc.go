// Package files owns the media list of the current identity.
//
// # Overview
//
// Store keeps the list in memory and mirrors it, as a JSON array, to the
// durable slot common.FilesKey(identityID). The list is never mutated in
// place: every mutation builds a new slice, writes it to durable storage and
// only then publishes it, so readers always see a list that matches what is
// persisted.
//
// The list follows the session: Reload is registered as a session listener
// and swaps in the list of the new identity (or an empty list on logout).
//
// Upload steps
//
//  1. wait for the backend (simulated latency, honours ctx)
//  2. obtain a content reference from the blob provider
//  3. derive a thumbnail
//  4. build the entry with a fresh id, the current time and the owner id
//  5. append, persist, publish
//
// A failure in steps 1-3, or an identity switch while the upload was in
// flight, yields ErrUploadFailed and leaves the list untouched.
package files
