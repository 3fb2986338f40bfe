package catalog

import (
	dErrors "citizengate/pkg/domain-errors"
)

// UnknownServiceError is returned by every surface that resolves a service id.
// Details list the valid ids so clients can self-correct.
func UnknownServiceError(serviceID string) error {
	return dErrors.New(dErrors.CodeNotFound, "unknown service type: "+serviceID).
		WithDetails(map[string]any{"valid_services": ServiceIDs()})
}
