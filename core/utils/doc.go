// Package utils provides common utility functions for the catalog service.
// It includes helper functions for type conversion and header normalization
// shared by the feed sources.
package utils
