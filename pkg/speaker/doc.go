// Package speaker decides which of two speakers most likely produced a text by
// comparing length-normalized log probabilities under two character Markov models.
package speaker
