// Package refiner rewrites subtitle documents through a chat completion
// model. The caller supplies a free-form instruction; the model returns the
// full SRT text with the edit applied and the timing untouched.
package refiner
