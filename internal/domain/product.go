package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document kept as submitted. The service owns only
// _id and createdAt; every other field passes through to the store and back
// untouched.
type Product map[string]any

const (
	productIDField        = "_id"
	productCreatedAtField = "createdAt"
)

// ID returns the document id. Ids read back from a JSON cache arrive as hex
// strings and are parsed.
func (p Product) ID() primitive.ObjectID {
	switch id := p[productIDField].(type) {
	case primitive.ObjectID:
		return id
	case string:
		oid, err := primitive.ObjectIDFromHex(id)
		if err == nil {
			return oid
		}
	}
	return primitive.NilObjectID
}

// SetID records the stored id.
func (p Product) SetID(id primitive.ObjectID) {
	p[productIDField] = id
}

// ClearID drops any client supplied id so the store assigns one.
func (p Product) ClearID() {
	delete(p, productIDField)
}

// StampCreated sets createdAt when the document carries none.
func (p Product) StampCreated(now time.Time) {
	if _, ok := p[productCreatedAtField]; !ok {
		p[productCreatedAtField] = now
	}
}

// Text returns a string field, or "" when absent or not a string.
func (p Product) Text(key string) string {
	s, _ := p[key].(string)
	return s
}
