package loanorder

// Options carries the tenant-level settings that tune order behavior.
// The application layer loads them from configuration and passes them
// into the aggregate methods that consult them.
type Options struct {
	// RequireResponsible makes the responsible owner mandatory at
	// order creation.
	RequireResponsible bool

	// AutoCompleteOnFullReturn moves the order to Returned
	// automatically once every line has closed.
	AutoCompleteOnFullReturn bool

	// AllowEditCompletedOrders permits mutating orders whose status
	// is in the complete or failed group. When false such orders are
	// locked against edits.
	AllowEditCompletedOrders bool

	// DueDateReminderDays is how many days before the due date the
	// reminder job starts notifying.
	DueDateReminderDays int
}

// DefaultOptions returns the settings used when no tenant configuration
// overrides them.
func DefaultOptions() Options {
	return Options{
		RequireResponsible:       false,
		AutoCompleteOnFullReturn: true,
		AllowEditCompletedOrders: false,
		DueDateReminderDays:      3,
	}
}
