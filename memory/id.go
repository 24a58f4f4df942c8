package memory

import "github.com/google/uuid"

// pointNamespace scopes application-derived point IDs. Changing it would
// detach every stored record from its application.
var pointNamespace = uuid.MustParse("8f1c2d4e-6a7b-4c9d-8e0f-1a2b3c4d5e6f")

// PointID derives a stable UUID from an application ID. Backends key
// points by UUID; deriving it deterministically makes finalize idempotent
// per application instead of appending duplicates.
func PointID(applicationID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(applicationID)).String()
}
