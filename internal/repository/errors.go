// Package repository implements data access for the VOD catalog over
// database/sql. This file defines the sentinel errors shared across the
// repositories. Handlers match them with errors.Is and translate them into
// HTTP status codes: NotFound variants become 404, Duplicate variants 409,
// Missing variants 400.
package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when a category name is already taken.
// Category names are unique globally, not per parent.
var ErrDuplicateName = errors.New("name already exists")

// ErrDuplicateTitle is returned when a series title is already taken.
var ErrDuplicateTitle = errors.New("title already exists")

// ErrDuplicateEpisode is returned when a video with the same (title, series)
// pair already exists.
var ErrDuplicateEpisode = errors.New("episode already exists in series")

// ErrParentNotFound is returned when a subcategory references a parent
// category that does not exist.
var ErrParentNotFound = errors.New("parent category not found")

// ErrCategoryNotFound is returned when a video references a category that
// does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrRootCategoryForbidden is returned when a video is attached to a root
// category while the deployment policy restricts videos to subcategories.
var ErrRootCategoryForbidden = errors.New("videos may not attach to a root category")

// ErrMissingAttachment is returned when a video declares neither a category
// nor a series.
var ErrMissingAttachment = errors.New("video must attach to a category or a series")

// ErrMissingFilter is returned when a listing query provides neither a
// category nor a series filter.
var ErrMissingFilter = errors.New("category or series filter required")

// ErrMissingFields is returned when a complaint omits its title or
// description.
var ErrMissingFields = errors.New("title and description are required")

// ErrAlreadyFavorited is returned when a video is marked favorite twice.
// The favorite flag is global per video, not per user.
var ErrAlreadyFavorited = errors.New("video already favorited")

// ErrEmailExists is returned when a registration reuses an existing email.
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneExists is returned when a registration reuses an existing phone
// number.
var ErrPhoneExists = errors.New("phone number already exists")
