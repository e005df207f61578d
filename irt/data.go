package irt

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when the response arrays have unequal
	// lengths.
	ErrLengthMismatch = errors.New("irt: response arrays have unequal lengths")
	// ErrEmptyData is returned when there are no responses.
	ErrEmptyData = errors.New("irt: no responses")
	// ErrIndexOutOfRange is returned for a negative item or person index,
	// or an item index beyond the supplied maximum scores.
	ErrIndexOutOfRange = errors.New("irt: item or person index out of range")
	// ErrScoreOutOfRange is returned for an ordinal score outside
	// [0, max score] for its item.
	ErrScoreOutOfRange = errors.New("irt: ordinal score out of range")
	// ErrNoResponses is returned when an item has no responses and no
	// explicit maximum score, so its category count cannot be derived.
	ErrNoResponses = errors.New("irt: item has no responses")
)

// Data holds a set of ordinal item responses in long form: parallel arrays
// of item index, person index and observed score. Scores for item i range
// over 0..MaxScore(i).
type Data struct {
	item, person, score []int

	numItems   int
	numPersons int
	maxScore   []int
}

// NewData validates and returns a response data set. Item and person
// indices are zero-based. maxScore gives the maximum score per item; if it
// is nil the maxima are derived from the observed scores, in which case
// every item must have at least one response with a positive score somewhere
// in its range. All scores are validated before any model evaluation, so a
// malformed data set fails here rather than mid-likelihood.
func NewData(item, person, score []int, maxScore []int) (*Data, error) {
	if len(item) != len(person) || len(item) != len(score) {
		return nil, fmt.Errorf("%w: %d items, %d persons, %d scores",
			ErrLengthMismatch, len(item), len(person), len(score))
	}
	if len(item) == 0 {
		return nil, ErrEmptyData
	}

	numItems := len(maxScore)
	numPersons := 0
	for n := range item {
		if item[n] < 0 || person[n] < 0 {
			return nil, fmt.Errorf("%w: response %d has item %d, person %d",
				ErrIndexOutOfRange, n, item[n], person[n])
		}
		if maxScore != nil && item[n] >= len(maxScore) {
			return nil, fmt.Errorf("%w: response %d has item %d, only %d maximum scores given",
				ErrIndexOutOfRange, n, item[n], len(maxScore))
		}
		if item[n]+1 > numItems {
			numItems = item[n] + 1
		}
		if person[n]+1 > numPersons {
			numPersons = person[n] + 1
		}
	}

	derived := maxScore == nil
	if derived {
		maxScore = make([]int, numItems)
		for n, i := range item {
			if score[n] > maxScore[i] {
				maxScore[i] = score[n]
			}
		}
	}
	for i, m := range maxScore {
		if m < 1 {
			if derived {
				return nil, fmt.Errorf("%w: item %d (no score above 0 observed; pass explicit maximum scores)",
					ErrNoResponses, i)
			}
			return nil, fmt.Errorf("%w: item %d has maximum score %d", ErrScoreOutOfRange, i, m)
		}
	}
	for n := range score {
		if score[n] < 0 || score[n] > maxScore[item[n]] {
			return nil, fmt.Errorf("%w: response %d has score %d, item %d allows 0..%d",
				ErrScoreOutOfRange, n, score[n], item[n], maxScore[item[n]])
		}
	}

	return &Data{
		item:       item,
		person:     person,
		score:      score,
		numItems:   numItems,
		numPersons: numPersons,
		maxScore:   maxScore,
	}, nil
}

// NumResponses returns the number of responses.
func (d *Data) NumResponses() int { return len(d.score) }

// NumItems returns the number of items.
func (d *Data) NumItems() int { return d.numItems }

// NumPersons returns the number of persons.
func (d *Data) NumPersons() int { return d.numPersons }

// MaxScore returns the maximum score of item i, which is also its number of
// step difficulties.
func (d *Data) MaxScore(i int) int { return d.maxScore[i] }
