package mock

import (
	"context"
	"fmt"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via a function field.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, a canned deterministic answer is returned.
	GenerateFunc func(ctx context.Context, systemInstruction, userPrompt string, temperature float64) (string, error)

	callCount       int
	lastSystem      string
	lastUserPrompt  string
	lastTemperature float64
}

// NewMockGenerator creates a mock generator with default deterministic
// behavior. Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the call and returns either the injected behavior's
// result or a canned answer derived from the prompt length.
func (m *MockGenerator) Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float64) (string, error) {
	m.callCount++
	m.lastSystem = systemInstruction
	m.lastUserPrompt = userPrompt
	m.lastTemperature = temperature

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemInstruction, userPrompt, temperature)
	}

	return fmt.Sprintf("mock answer (%d prompt chars)", len(userPrompt)), nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastSystemInstruction returns the system instruction of the last call.
func (m *MockGenerator) LastSystemInstruction() string {
	return m.lastSystem
}

// LastUserPrompt returns the user prompt of the last call.
func (m *MockGenerator) LastUserPrompt() string {
	return m.lastUserPrompt
}

// LastTemperature returns the temperature of the last call.
func (m *MockGenerator) LastTemperature() float64 {
	return m.lastTemperature
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUserPrompt = ""
	m.lastTemperature = 0
	m.GenerateFunc = nil
}
