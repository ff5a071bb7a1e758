package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/followupdesk/internal/client/client"
)

var (
	// ErrAdminOnly refuses admin operations for non-admin users before any
	// network call. It matches client.ErrForbidden.
	ErrAdminOnly = fmt.Errorf("%w: administrator role required", client.ErrForbidden)

	ErrInitialRemark  = errors.New("the initial remark cannot be deleted")
	ErrRemarkNotFound = errors.New("remark not found")
)
