package types

// UserMetadata is the user facing description stored alongside a mutable
// data. Both fields are optional.
type UserMetadata struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
