package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	LogID        *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
