// Package lesson drives a single lesson run: question ordering, answer
// checking, mistake tracking and the retry loop. All state lives in the
// Session; callers decide when time passes by supplying now.
package lesson

import (
	"time"

	"github.com/abhisek/texdrill/internal/hearts"
	"github.com/abhisek/texdrill/internal/quiz"
)

// Status is the resolution state of the current question.
type Status int

const (
	// StatusPending means no submission has been checked yet.
	StatusPending Status = iota
	// StatusCorrect means the last submission was right; Next may advance.
	StatusCorrect
	// StatusIncorrect means the last submission was wrong; the question
	// must be retried before the session can advance.
	StatusIncorrect
)

// Session holds the state of one lesson attempt.
type Session struct {
	lessonID  string
	questions []quiz.Question
	economy   *hearts.Economy

	index     int
	status    Status
	feedback  string
	selection quiz.Submission

	// missed records question IDs answered wrong at least once,
	// in first-miss order. Used for the final score.
	missed    []string
	missedSet map[string]bool
	finished  bool
}

// NewSession starts a lesson attempt at its first question. The economy
// is shared with the caller; wrong answers decrement it in place.
func NewSession(lessonID string, questions []quiz.Question, economy *hearts.Economy) *Session {
	return &Session{
		lessonID:  lessonID,
		questions: questions,
		economy:   economy,
		missedSet: make(map[string]bool),
	}
}

// LessonID returns the lesson this session is running.
func (s *Session) LessonID() string { return s.lessonID }

// Len returns the number of questions in the lesson.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question being worked on, or nil once finished.
func (s *Session) Current() *quiz.Question {
	if s.finished || s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

// Status reports the resolution state of the current question.
func (s *Session) Status() Status { return s.status }

// Feedback returns the message set by the last resolution, if any.
func (s *Session) Feedback() string { return s.feedback }

// Finished reports whether every question has been answered correctly.
func (s *Session) Finished() bool { return s.finished }

// Selection returns the submission staged for the current question.
func (s *Session) Selection() quiz.Submission { return s.selection }

// SetSelection stages a submission for the current question. Ignored
// once the question is resolved or the session is over.
func (s *Session) SetSelection(sub quiz.Submission) {
	if s.finished || s.status != StatusPending {
		return
	}
	s.selection = sub
}

// Submit checks the staged selection against the current question.
// A wrong answer costs a heart and logs the question as missed; the
// question stays current until retried correctly. Submitting with no
// selection, after resolution, or after the session ended is a no-op
// returning false.
func (s *Session) Submit(now time.Time) bool {
	if s.finished || s.status != StatusPending || s.selection == nil {
		return false
	}
	q := s.Current()
	if q == nil {
		return false
	}
	correct := quiz.Grade(q, s.selection)
	s.resolve(q, correct, "", now)
	return correct
}

// Resolve records an externally-checked result for the current question,
// such as a match board finishing or mismatching. It follows the same
// path as Submit: wrong results cost a heart and log a miss.
func (s *Session) Resolve(correct bool, feedback string, now time.Time) {
	if s.finished || s.status != StatusPending {
		return
	}
	q := s.Current()
	if q == nil {
		return
	}
	s.resolve(q, correct, feedback, now)
}

func (s *Session) resolve(q *quiz.Question, correct bool, feedback string, now time.Time) {
	if correct {
		s.status = StatusCorrect
		s.feedback = feedback
		if s.feedback == "" {
			s.feedback = "Correct!"
		}
		return
	}
	s.status = StatusIncorrect
	s.feedback = feedback
	if s.feedback == "" {
		s.feedback = "Not quite. Try again."
	}
	if !s.missedSet[q.ID] {
		s.missedSet[q.ID] = true
		s.missed = append(s.missed, q.ID)
	}
	s.economy.Decrement(now)
}

// Next advances past a correctly-answered question. The session finishes
// when the last question is cleared. Calling Next while pending or after
// a wrong answer does nothing and returns false.
func (s *Session) Next() bool {
	if s.finished || s.status != StatusCorrect {
		return false
	}
	s.index++
	s.status = StatusPending
	s.feedback = ""
	s.selection = nil
	if s.index >= len(s.questions) {
		s.finished = true
	}
	return true
}

// Retry clears an incorrect resolution so the same question can be
// answered again. Only valid after a wrong answer.
func (s *Session) Retry() bool {
	if s.finished || s.status != StatusIncorrect {
		return false
	}
	s.status = StatusPending
	s.feedback = ""
	s.selection = nil
	return true
}

// Missed returns the IDs of questions answered wrong at least once,
// in the order they were first missed.
func (s *Session) Missed() []string {
	out := make([]string, len(s.missed))
	copy(out, s.missed)
	return out
}

// Score returns the fraction of questions answered correctly on the
// first try. Zero-question lessons score 1.
func (s *Session) Score() float64 {
	if len(s.questions) == 0 {
		return 1
	}
	firstTry := len(s.questions) - len(s.missed)
	if firstTry < 0 {
		firstTry = 0
	}
	return float64(firstTry) / float64(len(s.questions))
}
