package hpq

// pad is cache line padding used to prevent false sharing between hot
// atomic fields, the same convention the rest of this dependency lineage's
// lock-free queues use for their head/tail/threshold fields.
type pad [64]byte
