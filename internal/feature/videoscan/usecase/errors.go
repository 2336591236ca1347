// Package usecase implements the business logic for the videoscan feature.
package usecase

import "errors"

var (
	// ErrURLRequired is returned when a scan request has no video URL.
	ErrURLRequired = errors.New("video url is required")

	// ErrUnsupportedURL is returned when the URL does not reference a supported video source.
	ErrUnsupportedURL = errors.New("unsupported video url")

	// ErrDownloadFailed is returned when the video could not be downloaded.
	ErrDownloadFailed = errors.New("failed to download video")

	// ErrNoFrames is returned when no frames could be extracted from the video.
	ErrNoFrames = errors.New("no frames extracted from video")
)
