package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID mints a store-native identifier (hex ObjectID).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed store identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
