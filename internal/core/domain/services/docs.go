// Package services contains domain services for the fulfillment system.
// ScheduleCalculator converts a delivery count and start day into concrete
// calendar dates by scanning the operational calendar.
package services
