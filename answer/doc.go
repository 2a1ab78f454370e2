// Package answer synthesizes grounded answers from retrieved document
// chunks.
//
// The Synthesizer concatenates match texts into a bounded context block,
// instructs the generation model to answer strictly from it, and returns
// the answer together with the matches that produced it.
package answer
