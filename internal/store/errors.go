package store

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dionysio/spendee-go/internal/errs"
)

// mapErr classifies a Firestore failure: gRPC NotFound becomes the
// domain NotFoundError, everything else surfaces verbatim as a
// StoreError. No retries happen at this layer.
func mapErr(operation, subject string, err error) error {
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError(subject + " not found")
	}
	return errs.NewStoreError(operation, err.Error())
}
