/*
Package markov provides k-order character Markov models for scoring how likely
a text is under the statistics of a training text.

A Model counts every circular k-gram and (k+1)-gram of its training text in two
open-addressing hash tables. Scoring a query walks each of its positions,
looks up the k characters preceding it (the context) and the context extended
by the character itself, and accumulates additively smoothed log
probabilities:

	log((count(context+c) + 1) / (count(context) + alphabetSize))

Both training and scoring treat their text as circular, so the first
positions of a string take their context from the string's own tail.

	model, err := markov.New(2, trainingText)
	if err != nil {
		return err
	}
	score := model.LogProbability("some unseen text")

Models are immutable once built and hold the full training text in memory.
*/
package markov
