// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): retrieval, LLM, embeddings, the vector
// index, prompt and config storage, and eval-run persistence.
package driven
