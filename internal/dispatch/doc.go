package dispatch

// Package dispatch runs background tasks on a bounded pool of goroutines.
// Each task wraps one blocking engine call and exposes a small event surface
// (progress, error, finished) that subscribers register before submission.
// Events are delivered on the worker goroutine; handing them over to a UI
// thread is the subscriber's job.
