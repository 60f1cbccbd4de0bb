package environment

// StepLimit tracks the number of steps taken in an episode and reports
// when a step budget has been used up
type StepLimit struct {
	episodeSteps int
	current      int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) *StepLimit {
	return &StepLimit{episodeSteps: episodeSteps}
}

// Step records that a step was taken and returns whether the step
// budget has been reached
func (s *StepLimit) Step() bool {
	s.current++
	return s.Reached()
}

// Reached returns whether the step budget has been reached
func (s *StepLimit) Reached() bool {
	return s.current >= s.episodeSteps
}

// Steps returns the number of steps taken since the last Reset
func (s *StepLimit) Steps() int {
	return s.current
}

// Limit returns the step budget
func (s *StepLimit) Limit() int {
	return s.episodeSteps
}

// Reset sets the number of steps taken to 0
func (s *StepLimit) Reset() {
	s.current = 0
}
