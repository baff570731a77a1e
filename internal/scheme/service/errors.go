package service

import (
	"errors"

	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/sentinel"
)

// wrapSchemeErr translates store sentinels into coded domain errors carrying
// the scheme id.
func wrapSchemeErr(err error, schemeID id.SchemeID) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "scheme "+schemeID.String()+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "read scheme "+schemeID.String())
}
