package hazard

// pad is cache line padding to prevent false sharing of the registry's
// hot free-list heads and per-record bookkeeping, the same convention
// used throughout this dependency lineage's lock-free data structures.
type pad [64]byte
