package controller

import "errors"

// ErrNotCaptured is returned by ShowCard for a species that is not owned.
var ErrNotCaptured = errors.New("species not captured")

// ErrScanRunning is returned by StartScan while another scan is running or
// starting.
var ErrScanRunning = errors.New("scan already running")
