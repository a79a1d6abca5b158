package vdi_service

import "errors"

var (
	// Parameter validation errors
	ErrNameRequired = errors.New("VDI name can not be empty")
	ErrNameTooLong  = errors.New("VDI name is too long")
	ErrTagRequired  = errors.New("snapshot tag can not be empty")
	ErrSizeZero     = errors.New("VDI size must be larger than 0")
	ErrSizeTooLarge = errors.New("VDI size is too large")

	// State conflict errors
	ErrIsSnapshot       = errors.New("VDI revision is an immutable snapshot")
	ErrTagInUse         = errors.New("snapshot tag is already in use")
	ErrNotSnapshottable = errors.New("extended-policy volumes can not be snapshotted")

	// Handle lifecycle errors
	ErrHandleClosed   = errors.New("VDI handle is closed")
	ErrNegativeOffset = errors.New("offset can not be negative")
)
