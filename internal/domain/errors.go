package domain

import "errors"

// ErrCondenserProviderError signals a condenser provider failure.
var ErrCondenserProviderError = errors.New("condenser provider error")
