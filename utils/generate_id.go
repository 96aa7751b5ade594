package utils

import "github.com/google/uuid"

// GenerateID returns a new unique ID for any entity.
func GenerateID() string {
	return uuid.New().String()
}

func GenerateUserID() string {
	return uuid.New().String()
}
