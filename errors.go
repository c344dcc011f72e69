package crawlsched

import "errors"

// ErrQueueClosed is returned by BalancedScheduler.Push when the request's
// target slot has already been closed via CloseQueue. The scheduler's
// state is left unchanged; the caller should drop the request.
var ErrQueueClosed = errors.New("crawlsched: queue closed for this slot")
