// Package store provides SQLite-backed storage for the date and time
// dimension tables.
//
// # Tables
//
//   - loads: one row per populate run, keyed by a UUIDv7 load ID
//   - date_dimension: one row per calendar day, keyed by its yyyymmdd DateID
//   - time_dimension: one row per instant of the zero day, keyed by TimeID
//
// # Idempotency
//
// PopulateDateDimension inserts only years that are not already present, and
// PopulateTimeDimension only fills an empty table. Each run happens in a
// single transaction and inserts use ON CONFLICT DO NOTHING, so re-running a
// populate never duplicates rows. A run that inserts nothing records no load.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Every dimension row references its load
package store
