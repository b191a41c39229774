// Package kernel contains shared value objects used across all domain
// aggregates: UUID identifiers and Day, the day-granularity UTC calendar
// date that the operational calendar, the schedule calculator, and order
// delivery schedules agree on.
package kernel
