// Package domain defines domain-level errors for the assets feature.
package domain

import "errors"

var (
	// ErrAssetNotFound indicates that an asset ID does not resolve to an existing asset.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNoAmountHistory indicates that an asset has no recorded holding amounts yet.
	ErrNoAmountHistory = errors.New("asset has no amount history")
)
