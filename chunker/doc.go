// Package chunker splits extracted document text into the sentence-aligned
// chunks that form the atomic retrievable unit of the pipeline.
package chunker
