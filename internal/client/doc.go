// Package client implements the lingoreel client application runtime.
//
// It wires the local store, the remote record-store adapter, the sync
// engine, and the background workers into a single process lifecycle,
// and exposes the small authentication surface the embedding UI calls.
package client
