// Package batch evaluates many questions concurrently against a retrieval
// strategy, for regression runs over a question list.
package batch
