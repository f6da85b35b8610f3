package domain

import "fmt"

// DocumentProcessingError reports a failure while converting a source
// file or writing its markdown artifact.
type DocumentProcessingError struct {
	Op  string
	Err error
}

func NewDocumentProcessingError(op string, err error) *DocumentProcessingError {
	return &DocumentProcessingError{Op: op, Err: err}
}

func (e *DocumentProcessingError) Error() string {
	return fmt.Sprintf("document processing: %s: %v", e.Op, e.Err)
}

func (e *DocumentProcessingError) Unwrap() error { return e.Err }

// VectorStoreError reports a failure while chunking, embedding, storing
// or retrieving indexed content. An empty result set is not an error.
type VectorStoreError struct {
	Op  string
	Err error
}

func NewVectorStoreError(op string, err error) *VectorStoreError {
	return &VectorStoreError{Op: op, Err: err}
}

func (e *VectorStoreError) Error() string {
	return fmt.Sprintf("vector store: %s: %v", e.Op, e.Err)
}

func (e *VectorStoreError) Unwrap() error { return e.Err }

// RAGError is the single failure type presented at the orchestration
// boundary. Typed errors from sub-components are wrapped into it once.
type RAGError struct {
	Op  string
	Err error
}

func NewRAGError(op string, err error) *RAGError {
	return &RAGError{Op: op, Err: err}
}

func (e *RAGError) Error() string {
	return fmt.Sprintf("rag: %s: %v", e.Op, e.Err)
}

func (e *RAGError) Unwrap() error { return e.Err }
