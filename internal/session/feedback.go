package session

import (
	"math/rand"
	"sync"
)

// TimeUpMessage is shown when a question expires without an answer.
const TimeUpMessage = "Time's up!"

var PositiveMessages = []string{
	"Nicely done!",
	"Great job!",
	"Perfect!",
	"Well done!",
	"Amazing!",
	"Fantastic!",
	"Brilliant!",
	"Superb!",
	"Outstanding!",
	"Wonderful!",
}

var NegativeMessages = []string{
	"Correct solution:",
	"The answer is:",
	"The correct answer is:",
	"It should be:",
	"The solution is:",
}

// MessageSource picks the feedback line shown after a check.
type MessageSource interface {
	Positive() string
	Negative() string
}

// MessageAt picks set[i] with i wrapped into range.
func MessageAt(set []string, i int) string {
	if len(set) == 0 {
		return ""
	}
	i %= len(set)
	if i < 0 {
		i += len(set)
	}
	return set[i]
}

// IndexedMessages always returns the messages at fixed indices.
type IndexedMessages struct {
	PositiveIndex int
	NegativeIndex int
}

func (m IndexedMessages) Positive() string { return MessageAt(PositiveMessages, m.PositiveIndex) }
func (m IndexedMessages) Negative() string { return MessageAt(NegativeMessages, m.NegativeIndex) }

// RandomMessages draws uniformly from the message sets.
type RandomMessages struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomMessages(seed int64) *RandomMessages {
	return &RandomMessages{rng: rand.New(rand.NewSource(seed))}
}

func (m *RandomMessages) Positive() string { return m.pick(PositiveMessages) }
func (m *RandomMessages) Negative() string { return m.pick(NegativeMessages) }

func (m *RandomMessages) pick(set []string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MessageAt(set, m.rng.Intn(len(set)))
}
