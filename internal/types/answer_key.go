package types

// AnswerKey maps question ids to the correct option for one administration.
// A missing entry means no canonical answer is available for that question.
type AnswerKey map[string]string

// Lookup returns the correct option for id and whether one exists.
func (k AnswerKey) Lookup(id string) (string, bool) {
	v, ok := k[id]
	return v, ok
}
