// Package calendar provides the operational calendar domain model: the
// admin-maintained, per-day record of whether deliveries are permitted.
// The schedule calculator reads this calendar when turning a delivery count
// into concrete dates; a day with no record is treated as not configured,
// which is distinct from explicitly disabled.
package calendar
