// Package store provides SQLite-backed persistence for whiteboard
// sticker sets.
//
// The store is the persistence collaborator of the chain ordering
// engine: it supplies the initial unordered record set at session start
// and durably stores the record set after appends and extractions. It
// deliberately knows nothing about chain validity - boards are saved and
// loaded as flat record sets, and the engine re-derives and re-validates
// order from the lower_id links on every load. Stored positions are
// advisory (they keep dumps readable and loads deterministic), never
// authoritative.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: stickers cascade with their board row
//
// Schema migrations run automatically on Open via PRAGMA user_version.
package store
