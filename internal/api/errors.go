package api

import (
	"errors"
	"net/http"

	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// writeClientError maps a fake-client validation error onto the provider's
// numeric error codes for the given resource family.
func writeClientError(w http.ResponseWriter, family string, err error) {
	var missingArg *twindial.MissingArgumentError
	var missingCfg *twindial.MissingConfigurationError

	switch {
	case errors.As(err, &missingArg):
		httpd.TwilioError(w, http.StatusBadRequest, missingArgCode(family, missingArg.Field), err.Error())
	case errors.As(err, &missingCfg):
		httpd.TwilioError(w, http.StatusBadRequest, missingCfgCode(family, missingCfg.Purpose), err.Error())
	case errors.Is(err, twindial.ErrUnsupportedOperation):
		httpd.TwilioError(w, http.StatusNotFound, 20404, err.Error())
	default:
		httpd.Error(w, http.StatusBadRequest, err.Error())
	}
}

func missingArgCode(family, field string) int {
	switch family {
	case "messages":
		return 21604 // A 'To' phone number is required
	case "calls":
		if field == "From" {
			return 21213
		}
		return 21201
	case "verify":
		return 60200
	}
	return 21601
}

func missingCfgCode(family, purpose string) int {
	switch family {
	case "messages":
		if purpose == "sender identity" {
			return 21603
		}
		return 21602
	case "calls":
		return 21202
	case "verify":
		return 60200
	}
	return 21601
}
