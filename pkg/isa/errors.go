package isa

import "github.com/pkg/errors"

// Sentinel causes wrapped by github.com/pkg/errors at every parse
// failure so cmd/accgen can print a full cause chain back to whichever
// YAML file and field triggered it.
var (
	ErrUnknownRegisterClass = errors.New("isa: unknown register class")
	ErrUnknownFormat        = errors.New("isa: unknown instruction format")
	ErrUnknownInstruction   = errors.New("isa: semantics given for unknown instruction")
	ErrUnknownLeafKind      = errors.New("isa: unknown expression leaf kind")
	ErrUnknownOperator      = errors.New("isa: expression node has neither an operator nor a leaf")
)
