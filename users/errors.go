package users

import apperrors "github.com/jrsteele09/speet-admin/internal/errors"

var errMalformed = apperrors.NewRequestError(0, "The user record could not be read.", apperrors.ErrNotFound)
