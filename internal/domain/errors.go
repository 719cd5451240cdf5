package domain

import "errors"

var (
	// ErrTypeMismatch indicates a payload whose type tag disagrees with the
	// owning stage's type.
	ErrTypeMismatch = errors.New("stage data type mismatch")

	// ErrMissingCommonField indicates a stage missing one of the fields every
	// stage must carry regardless of type.
	ErrMissingCommonField = errors.New("missing common stage field")

	// ErrMissingFields indicates a payload lacking type-specific required
	// fields at completion time.
	ErrMissingFields = errors.New("missing required stage data fields")

	// ErrIllegalTransition indicates a type progression or status change the
	// transition tables do not allow.
	ErrIllegalTransition = errors.New("illegal stage transition")

	// ErrStageNotComplete indicates an attempt to append a stage while the
	// current last stage is still open.
	ErrStageNotComplete = errors.New("current stage is not complete")

	// ErrTerminalStage indicates an attempted mutation of a completed or
	// skipped stage.
	ErrTerminalStage = errors.New("stage is terminal")

	// ErrCardinalityExceeded indicates the per-type instance cap would be
	// exceeded.
	ErrCardinalityExceeded = errors.New("stage type cardinality exceeded")

	// ErrDuplicateSingleton indicates a second instance of a singleton stage
	// type.
	ErrDuplicateSingleton = errors.New("duplicate singleton stage")

	// ErrTerminalStageExists indicates the pipeline already ended with a
	// completed terminal stage.
	ErrTerminalStageExists = errors.New("completed terminal stage exists")

	// ErrConflictingTerminal indicates offer_accepted and disqualified would
	// coexist.
	ErrConflictingTerminal = errors.New("conflicting terminal stage")

	// ErrInvalidOrder indicates the stage set violates the ordering
	// invariants.
	ErrInvalidOrder = errors.New("invalid stage order")

	// ErrCannotDeleteSubmission indicates an attempt to delete the
	// submit_application stage.
	ErrCannotDeleteSubmission = errors.New("cannot delete submission stage")

	// ErrCannotDeleteCompleted indicates an attempt to delete a completed
	// stage.
	ErrCannotDeleteCompleted = errors.New("cannot delete completed stage")

	// ErrActiveStageExists indicates a second stage would enter an active
	// status while another is already active.
	ErrActiveStageExists = errors.New("another stage is already active")
)
