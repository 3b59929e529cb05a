package common

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lithodb/lithodb/errors"
)

// LogInternalError logs err with a generated reference and returns an opaque
// error carrying only the reference. Internal error messages would leak
// implementation details to external callers, so they only ever appear in
// the server logs, keyed by the reference.
func LogInternalError(err error) errors.LithoError {
	var errRef string
	if id, err2 := uuid.NewRandom(); err2 != nil {
		log.Errorf("failed to generate error reference %v", err2)
	} else {
		errRef = id.String()
	}
	log.Errorf("internal error occurred with reference %s\n%+v", errRef, err)
	return errors.NewInternalError(errRef)
}
