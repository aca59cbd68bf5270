package game

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/mathdice/internal/model"
)

// Phase is the current state of a game session.
type Phase int

const (
	// PhaseDashboard waits for the player to roll the dice.
	PhaseDashboard Phase = iota
	// PhaseRolling animates the dice settling on an operation.
	PhaseRolling
	// PhaseCountdown counts 3-2-1 before the question appears.
	PhaseCountdown
	// PhaseQuestion has a live question and a running clock.
	PhaseQuestion
	// PhaseFeedback shows the outcome of the last answer.
	PhaseFeedback
	// PhaseOver is terminal; counters are frozen for display.
	PhaseOver
)

const (
	// RollSteps is the number of animation ticks before the dice settles.
	RollSteps = 20
	// RollStepInterval is the cadence of the dice animation.
	RollStepInterval = 100 * time.Millisecond
	// CountdownStart is the first number shown in the pre-question countdown.
	CountdownStart = 3
	// FeedbackDelay is how long the answer outcome stays on screen.
	FeedbackDelay = 2 * time.Second
)

// Outcome captures the result of judging one answer.
type Outcome struct {
	Correct bool
	Points  int
	Latency int
	// Bonus is the table magnitude; TimeDelta is what was actually applied
	// to the clock (less than Bonus when capped at the profile maximum,
	// negative for a wrong answer).
	Bonus     int
	TimeDelta int
	Capped    bool
	Answer    int
}

// Session owns all mutable state of one play-through. It contains no
// timers; the caller feeds it ticks and user actions one at a time.
type Session struct {
	user    string
	profile Profile
	gen     *Generator

	phase    Phase
	score    int
	correct  int
	wrong    int
	total    int
	timeLeft int

	rollStep  int
	face      Operation
	hasFace   bool
	countdown int

	question    Question
	hasQuestion bool
	askedAt     time.Time

	outcome Outcome
}

// NewSession starts a session on the dashboard with a full clock.
func NewSession(user string, profile Profile, gen *Generator) *Session {
	return &Session{
		user:     user,
		profile:  profile,
		gen:      gen,
		phase:    PhaseDashboard,
		timeLeft: profile.InitialTime,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Correct returns the number of correct answers.
func (s *Session) Correct() int { return s.correct }

// Wrong returns the number of wrong answers.
func (s *Session) Wrong() int { return s.wrong }

// Total returns the number of questions asked.
func (s *Session) Total() int { return s.total }

// TimeLeft returns the remaining seconds on the session clock.
func (s *Session) TimeLeft() int { return s.timeLeft }

// User returns the player identity.
func (s *Session) User() string { return s.user }

// Profile returns the active difficulty preset.
func (s *Session) Profile() Profile { return s.profile }

// Accuracy returns the rounded percentage of correct answers so far.
func (s *Session) Accuracy() int { return Accuracy(s.correct, s.total) }

// Face returns the operation currently shown on the dice.
func (s *Session) Face() (Operation, bool) { return s.face, s.hasFace }

// Countdown returns the current pre-question countdown value.
func (s *Session) Countdown() int { return s.countdown }

// Question returns the live question, if any.
func (s *Session) Question() (Question, bool) { return s.question, s.hasQuestion }

// Outcome returns the judgement of the last answer, valid in PhaseFeedback
// and later.
func (s *Session) Outcome() Outcome { return s.outcome }

// StartRoll begins the dice animation. It is a no-op unless the session is
// on the dashboard, so a roll in progress cannot be restarted.
func (s *Session) StartRoll() bool {
	if s.phase != PhaseDashboard {
		return false
	}
	s.phase = PhaseRolling
	s.rollStep = 0
	return true
}

// RollStep advances the dice animation by one tick showing the given face.
// After RollSteps ticks the face is fixed and the countdown begins.
// Returns true once the dice has settled.
func (s *Session) RollStep(face Operation) bool {
	if s.phase != PhaseRolling {
		return false
	}
	s.face = face
	s.hasFace = true
	s.rollStep++
	if s.rollStep < RollSteps {
		return false
	}
	s.phase = PhaseCountdown
	s.countdown = CountdownStart
	return true
}

// CountdownTick advances the 3-2-1 countdown. When it reaches zero the next
// question is generated and the clock resumes.
func (s *Session) CountdownTick(now time.Time) error {
	if s.phase != PhaseCountdown {
		return nil
	}
	s.countdown--
	if s.countdown > 0 {
		return nil
	}
	q, err := s.gen.Generate(s.face, s.profile)
	if err != nil {
		return err
	}
	s.question = q
	s.hasQuestion = true
	s.total++
	s.askedAt = now
	s.phase = PhaseQuestion
	return nil
}

// ClockTick decrements the shared session clock. The clock only runs while
// a question is live; hitting zero ends the game immediately.
// Returns true when the game just ended.
func (s *Session) ClockTick() bool {
	if s.phase != PhaseQuestion {
		return false
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		return false
	}
	s.timeLeft = 0
	s.phase = PhaseOver
	return true
}

// Submit judges an answer. Empty or non-integer input is silently ignored.
// Valid input moves the session to PhaseFeedback and returns the outcome.
func (s *Session) Submit(input string, now time.Time) (Outcome, bool) {
	if s.phase != PhaseQuestion {
		return Outcome{}, false
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return Outcome{}, false
	}
	answer, err := strconv.Atoi(input)
	if err != nil {
		return Outcome{}, false
	}

	latency := int(now.Sub(s.askedAt).Seconds())
	if latency < 0 {
		latency = 0
	}
	bonus := TimeBonus(latency, s.profile)

	out := Outcome{
		Latency: latency,
		Bonus:   bonus,
		Answer:  s.question.Answer,
	}
	if answer == s.question.Answer {
		out.Correct = true
		out.Points = PointsForCorrect(bonus)
		s.score += out.Points
		s.correct++
		old := s.timeLeft
		s.timeLeft = min(s.timeLeft+bonus, s.profile.MaxTime)
		out.TimeDelta = s.timeLeft - old
		out.Capped = out.TimeDelta < bonus
	} else {
		s.wrong++
		old := s.timeLeft
		s.timeLeft = max(s.timeLeft-bonus, 0)
		out.TimeDelta = s.timeLeft - old
	}

	s.outcome = out
	s.phase = PhaseFeedback
	return out, true
}

// FeedbackDone ends the feedback display. An exhausted clock ends the game;
// otherwise the session returns to the dashboard awaiting the next roll.
func (s *Session) FeedbackDone() Phase {
	if s.phase != PhaseFeedback {
		return s.phase
	}
	if s.timeLeft <= 0 {
		s.phase = PhaseOver
		return s.phase
	}
	s.hasFace = false
	s.hasQuestion = false
	s.phase = PhaseDashboard
	return s.phase
}

// Result builds the persistable summary of the session.
func (s *Session) Result() model.GameResult {
	return model.GameResult{
		ID:         uuid.NewString(),
		Username:   s.user,
		Difficulty: s.profile.Key,
		Score:      s.score,
		Correct:    s.correct,
		Wrong:      s.wrong,
		Total:      s.total,
		Accuracy:   s.Accuracy(),
	}
}

// Quit abandons the session from any phase. The partial result is returned
// only if at least one question was asked.
func (s *Session) Quit() (model.GameResult, bool) {
	if s.total == 0 {
		return model.GameResult{}, false
	}
	return s.Result(), true
}

// PlayAgain resets counters and clock for a fresh game on the same
// difficulty.
func (s *Session) PlayAgain() {
	s.phase = PhaseDashboard
	s.score = 0
	s.correct = 0
	s.wrong = 0
	s.total = 0
	s.timeLeft = s.profile.InitialTime
	s.rollStep = 0
	s.hasFace = false
	s.hasQuestion = false
	s.outcome = Outcome{}
}
