// Package services implements the driving ports: chat orchestration, the
// in-memory session, the RAG retrieval composition, and retrieval-quality
// evaluation.
package services
