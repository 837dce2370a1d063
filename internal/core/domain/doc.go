// Package domain contains the core business entities for docchat:
// retrieved passages, display records, the conversation transcript,
// answer modes, and source icon resolution.
//
// Everything in this package is a pure in-memory transform. Retrieval,
// embedding, and generation live behind ports and never appear here.
package domain
