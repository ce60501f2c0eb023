// Package pipeline drives a lazy stream of reads through amplicon matching,
// primer trimming, and prevalence filtering with a bounded pool of workers,
// funneling accepted reads into a single shared sink.
//
// Pool width bounds in-flight work, so the lazy source provides natural
// backpressure without a separate queue-depth control.
package pipeline
