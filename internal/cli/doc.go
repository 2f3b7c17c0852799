// Package cli provides the interactive gophcloud command-line client.
//
// It wires configuration, local storage, the session and file stores and an
// interactive REPL that plays the part of the gallery UI. Typical flow:
// restore the saved session, log in or register, upload images and videos,
// browse them with a filter, download or delete them.
//
// Key features:
//   - Register / Login / Demo login / Logout
//   - Upload with MIME sniffing and thumbnail derivation
//   - List (all, images, videos), newest first
//   - Download / Delete
//   - Operation counters (stats)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
